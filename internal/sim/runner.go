package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/j-henkel/solarsystem/internal/gravity"
)

// Runner advances a single gravitational system over many timesteps,
// feeding metrics and observers along the way. It owns no goroutines;
// use [Ensemble] to run independent systems in parallel.
type Runner struct {
	sys       *gravity.System
	metrics   []Metric
	observers []Observer
}

func New(sys *gravity.System) *Runner {
	return &Runner{
		sys:       sys,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// System returns the underlying system, for inspection after a run.
func (r *Runner) System() *gravity.System { return r.sys }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.SnapshotEvery
	if every == 0 {
		every = 1
	}

	if cfg.FixMomentum {
		if err := r.sys.FixMomentum(); err != nil {
			return nil, err
		}
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Times:     make([]float64, 0, cfg.Steps/every+1),
		Positions: make([][]float64, 0, cfg.Steps/every+1),
		Metrics:   make(map[string]float64),
	}

	t := 0.0
	result.Times = append(result.Times, t)
	result.Positions = append(result.Positions, r.sys.Positions())

	initialEnergy := r.sys.Energy(cfg.G)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(r.sys, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(r.sys, i, t)
		}

		if err := r.sys.StepInPlace(cfg.Dt, cfg.G); err != nil {
			return result, err
		}

		t += cfg.Dt
		result.StepsTaken++

		if (i+1)%every == 0 {
			result.Times = append(result.Times, t)
			result.Positions = append(result.Positions, r.sys.Positions())
		}
	}

	finalEnergy := r.sys.Energy(cfg.G)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt == 0 {
		return fmt.Errorf("dt must be non-zero")
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.SnapshotEvery < 0 {
		return fmt.Errorf("snapshot interval must be non-negative, got %d", cfg.SnapshotEvery)
	}
	return nil
}
