package gravity

import (
	"fmt"
	"math"
	"sync"
)

// parallelThreshold is the body count above which the pairwise kernel
// partitions the outer slot index across goroutines.
const parallelThreshold = 64

// StepInPlace advances the system by one explicit Euler step, overwriting
// its own arrays. dt may be negative to integrate backward; g is the
// gravitational constant (pass [G] for the physical value).
//
// The state is untouched on error: accelerations are fully evaluated before
// any array is written.
func (s *System) StepInPlace(dt, g float64) error {
	acc, err := s.accelerations(g)
	if err != nil {
		return err
	}

	// Position first, with the pre-step velocity.
	for i := range s.positions {
		s.positions[i] += s.velocities[i] * dt
	}
	for i := range s.velocities {
		s.velocities[i] += acc[i] * dt
	}
	return nil
}

// Stepped advances by one Euler step and returns the result as a new system,
// leaving the receiver unmodified. The returned system shares no storage
// with the receiver.
func (s *System) Stepped(dt, g float64) (*System, error) {
	acc, err := s.accelerations(g)
	if err != nil {
		return nil, err
	}

	positions := make([]float64, len(s.positions))
	velocities := make([]float64, len(s.velocities))
	for i := range s.positions {
		positions[i] = s.positions[i] + s.velocities[i]*dt
		velocities[i] = s.velocities[i] + acc[i]*dt
	}

	masses := make([]float64, len(s.masses))
	copy(masses, s.masses)
	names := make([]string, len(s.names))
	copy(names, s.names)
	slots := make(map[string]int, len(s.slots))
	for name, i := range s.slots {
		slots[name] = i
	}

	return fromState(positions, velocities, masses, slots, names, s.dim), nil
}

// accelerations evaluates the O(N²) pairwise force kernel, returning the
// flat N×D acceleration array: a_i = g · Σ_j m_j (p_j − p_i) / |p_j − p_i|³.
// The i=j term has a zero numerator and is skipped outright, which is the
// zero-distance diagonal guard. A zero distance between two distinct slots
// is a genuine singularity and fails rather than being silently masked.
func (s *System) accelerations(g float64) ([]float64, error) {
	n := s.Len()
	acc := make([]float64, n*s.dim)

	if n < parallelThreshold {
		if err := s.accumulate(acc, g, 0, n); err != nil {
			return nil, err
		}
		return acc, nil
	}

	// Each worker owns a disjoint range of outer slots and reads only
	// positions and masses, so the rows of acc never contend.
	var mu sync.Mutex
	var firstErr error
	parallelFor(n, 8, func(start, end int) {
		if err := s.accumulate(acc, g, start, end); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return acc, nil
}

func (s *System) accumulate(acc []float64, g float64, lo, hi int) error {
	n, d := s.Len(), s.dim

	for i := lo; i < hi; i++ {
		pi := s.positions[i*d : (i+1)*d]
		ai := acc[i*d : (i+1)*d]

		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			pj := s.positions[j*d : (j+1)*d]

			r2 := 0.0
			for k := 0; k < d; k++ {
				dx := pj[k] - pi[k]
				r2 += dx * dx
			}
			if r2 == 0 {
				return fmt.Errorf("%w: %q and %q occupy the same position",
					ErrCoincidentBodies, s.names[i], s.names[j])
			}

			// 1/r³ = 1/(r²·√r²)
			f := g * s.masses[j] / (r2 * math.Sqrt(r2))
			for k := 0; k < d; k++ {
				ai[k] += f * (pj[k] - pi[k])
			}
		}
	}
	return nil
}
