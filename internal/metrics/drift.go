package metrics

import (
	"math"

	"github.com/j-henkel/solarsystem/internal/gravity"
)

// MomentumDrift tracks how far the total linear momentum strays from its
// value at the first observation. For a closed system under pairwise gravity
// the forces cancel in the sum, so any drift is pure rounding.
type MomentumDrift struct {
	name     string
	initial  []float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(sys *gravity.System, t float64) {
	p := sys.Momentum()

	if m.samples == 0 {
		m.initial = p
		m.samples++
		return
	}
	m.samples++

	drift := 0.0
	for k := range p {
		d := p[k] - m.initial[k]
		drift += d * d
	}
	m.maxDrift = math.Max(m.maxDrift, math.Sqrt(drift))
}

func (m *MomentumDrift) Value() float64 {
	return m.maxDrift
}

func (m *MomentumDrift) Reset() {
	m.initial = nil
	m.maxDrift = 0
	m.samples = 0
}

// EnergyDrift tracks the maximum relative deviation of total mechanical
// energy from its value at the first observation.
type EnergyDrift struct {
	name          string
	g             float64
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(g float64) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", g: g}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(sys *gravity.System, t float64) {
	energy := sys.Energy(e.g)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
