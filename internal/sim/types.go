package sim

import "github.com/j-henkel/solarsystem/internal/gravity"

type Metric interface {
	Name() string
	Observe(sys *gravity.System, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(sys *gravity.System, step int, t float64)
}

type Config struct {
	Dt            float64
	Steps         int
	G             float64
	FixMomentum   bool
	SnapshotEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:            60.0,
		Steps:         1440,
		G:             gravity.G,
		SnapshotEvery: 1,
	}
}

// Result collects the trajectory of a run. Positions holds flat N×D
// snapshots in slot order, one per entry of Times.
type Result struct {
	Times       []float64
	Positions   [][]float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}
