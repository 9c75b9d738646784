package gravity

import (
	"fmt"
	"math"
)

// G is the Newtonian gravitational constant in N·m²/kg².
const G = 6.674e-11

// Body is a value snapshot of a single point mass. Instances returned by
// [System.Body] are copies with no back-reference to the system.
type Body struct {
	Name     string
	Mass     float64
	Position []float64
	Velocity []float64
}

// System holds all simulation state for a closed set of point masses.
// Positions and velocities are flat N×D row-major slices; slot i occupies
// [i*D, (i+1)*D). Slot assignment is fixed for the lifetime of the system.
type System struct {
	slots      map[string]int
	names      []string
	positions  []float64
	velocities []float64
	masses     []float64
	dim        int
}

// NewSystem builds a system from an ordered list of bodies, assigning slots
// in input order. The spatial dimension is taken from the first body and
// every later body must match it.
func NewSystem(bodies ...Body) (*System, error) {
	if len(bodies) == 0 {
		return nil, ErrEmptySystem
	}

	n := len(bodies)
	dim := len(bodies[0].Position)

	s := &System{
		slots:      make(map[string]int, n),
		names:      make([]string, n),
		positions:  make([]float64, n*dim),
		velocities: make([]float64, n*dim),
		masses:     make([]float64, n),
		dim:        dim,
	}

	for i, b := range bodies {
		if _, ok := s.slots[b.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
		}
		if len(b.Position) != dim || len(b.Velocity) != dim {
			return nil, fmt.Errorf("%w: body %q has position length %d and velocity length %d, want %d",
				ErrDimensionMismatch, b.Name, len(b.Position), len(b.Velocity), dim)
		}
		if b.Mass < 0 {
			return nil, fmt.Errorf("%w: body %q has mass %g", ErrNegativeMass, b.Name, b.Mass)
		}

		s.slots[b.Name] = i
		s.names[i] = b.Name
		copy(s.positions[i*dim:(i+1)*dim], b.Position)
		copy(s.velocities[i*dim:(i+1)*dim], b.Velocity)
		s.masses[i] = b.Mass
	}

	return s, nil
}

// fromState materializes a system from already-shaped arrays. Used by Stepped
// so the out-of-place advance shares the construction path without
// re-validating invariants the caller already holds.
func fromState(positions, velocities, masses []float64, slots map[string]int, names []string, dim int) *System {
	return &System{
		slots:      slots,
		names:      names,
		positions:  positions,
		velocities: velocities,
		masses:     masses,
		dim:        dim,
	}
}

// Len returns the number of bodies.
func (s *System) Len() int { return len(s.masses) }

// Dim returns the spatial dimension shared by all bodies.
func (s *System) Dim() int { return s.dim }

// Names returns the body names in slot order.
func (s *System) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Positions returns a copy of the flat N×D position array in slot order.
func (s *System) Positions() []float64 {
	out := make([]float64, len(s.positions))
	copy(out, s.positions)
	return out
}

// Body returns a value copy of the named body's current state.
func (s *System) Body(name string) (Body, error) {
	i, ok := s.slots[name]
	if !ok {
		return Body{}, fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}

	pos := make([]float64, s.dim)
	vel := make([]float64, s.dim)
	copy(pos, s.positions[i*s.dim:(i+1)*s.dim])
	copy(vel, s.velocities[i*s.dim:(i+1)*s.dim])

	return Body{Name: name, Mass: s.masses[i], Position: pos, Velocity: vel}, nil
}

// CenterOfMass returns the mass-weighted average position.
func (s *System) CenterOfMass() ([]float64, error) {
	return s.massWeightedMean(s.positions)
}

// FixMomentum subtracts the center-of-mass velocity from every body so the
// system's total linear momentum becomes numerically zero. Calling it twice
// is a no-op up to rounding.
func (s *System) FixMomentum() error {
	vcom, err := s.massWeightedMean(s.velocities)
	if err != nil {
		return err
	}
	for i := 0; i < s.Len(); i++ {
		for k := 0; k < s.dim; k++ {
			s.velocities[i*s.dim+k] -= vcom[k]
		}
	}
	return nil
}

// Momentum returns the total linear momentum Σ m·v per coordinate.
func (s *System) Momentum() []float64 {
	p := make([]float64, s.dim)
	for i := 0; i < s.Len(); i++ {
		for k := 0; k < s.dim; k++ {
			p[k] += s.masses[i] * s.velocities[i*s.dim+k]
		}
	}
	return p
}

// Energy returns the total mechanical energy (kinetic plus pairwise
// gravitational potential) for gravitational constant g.
func (s *System) Energy(g float64) float64 {
	n, d := s.Len(), s.dim
	ke := 0.0
	pe := 0.0

	for i := 0; i < n; i++ {
		v2 := 0.0
		for k := 0; k < d; k++ {
			v := s.velocities[i*d+k]
			v2 += v * v
		}
		ke += 0.5 * s.masses[i] * v2

		for j := i + 1; j < n; j++ {
			r2 := 0.0
			for k := 0; k < d; k++ {
				dx := s.positions[j*d+k] - s.positions[i*d+k]
				r2 += dx * dx
			}
			pe -= g * s.masses[i] * s.masses[j] / math.Sqrt(r2)
		}
	}

	return ke + pe
}

func (s *System) massWeightedMean(rows []float64) ([]float64, error) {
	total := 0.0
	for _, m := range s.masses {
		total += m
	}
	if total == 0 {
		return nil, ErrDegenerateSystem
	}

	mean := make([]float64, s.dim)
	for i := 0; i < s.Len(); i++ {
		for k := 0; k < s.dim; k++ {
			mean[k] += s.masses[i] * rows[i*s.dim+k]
		}
	}
	for k := range mean {
		mean[k] /= total
	}
	return mean, nil
}
