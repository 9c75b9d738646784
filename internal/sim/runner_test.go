package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/j-henkel/solarsystem/internal/gravity"
	"github.com/j-henkel/solarsystem/internal/sim"
)

type countingMetric struct {
	count int
}

func (c *countingMetric) Name() string                           { return "count" }
func (c *countingMetric) Observe(sys *gravity.System, t float64) { c.count++ }
func (c *countingMetric) Value() float64                         { return float64(c.count) }
func (c *countingMetric) Reset()                                 { c.count = 0 }

func binaryPair() *gravity.System {
	sys, err := gravity.NewSystem(
		gravity.Body{Name: "A", Mass: 1.0, Position: []float64{-0.5, 0}, Velocity: []float64{0, -0.5}},
		gravity.Body{Name: "B", Mass: 1.0, Position: []float64{0.5, 0}, Velocity: []float64{0, 0.5}},
	)
	Expect(err).NotTo(HaveOccurred())
	return sys
}

var _ = Describe("Runner", func() {
	var cfg sim.Config

	BeforeEach(func() {
		cfg = sim.Config{Dt: 0.001, Steps: 100, G: 1.0, SnapshotEvery: 1}
	})

	It("advances the configured number of steps", func() {
		r := sim.New(binaryPair())

		result, err := r.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(100))
		Expect(result.Times).To(HaveLen(101))
		Expect(result.Positions).To(HaveLen(101))
		Expect(result.Times[100]).To(BeNumerically("~", 0.1, 1e-9))
	})

	It("records snapshots at the configured interval", func() {
		cfg.SnapshotEvery = 10
		r := sim.New(binaryPair())

		result, err := r.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Times).To(HaveLen(11))
	})

	It("rejects invalid configurations", func() {
		r := sim.New(binaryPair())

		_, err := r.Run(context.Background(), sim.Config{Dt: 0, Steps: 10, G: 1})
		Expect(err).To(HaveOccurred())

		_, err = r.Run(context.Background(), sim.Config{Dt: 0.01, Steps: 0, G: 1})
		Expect(err).To(HaveOccurred())

		_, err = r.Run(context.Background(), sim.Config{Dt: 0.01, Steps: 10, G: 1, SnapshotEvery: -1})
		Expect(err).To(HaveOccurred())
	})

	It("accepts a negative timestep", func() {
		cfg.Dt = -0.001
		r := sim.New(binaryPair())

		result, err := r.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Times[100]).To(BeNumerically("~", -0.1, 1e-9))
	})

	It("zeroes net momentum first when configured", func() {
		sys, err := gravity.NewSystem(
			gravity.Body{Name: "A", Mass: 2.0, Position: []float64{-0.5, 0}, Velocity: []float64{1, 1}},
			gravity.Body{Name: "B", Mass: 1.0, Position: []float64{0.5, 0}, Velocity: []float64{1, -1}},
		)
		Expect(err).NotTo(HaveOccurred())

		cfg.FixMomentum = true
		_, err = sim.New(sys).Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		// Momentum is conserved by the step, so it stays where the fix put it.
		for _, p := range sys.Momentum() {
			Expect(p).To(BeNumerically("~", 0, 1e-9))
		}
	})

	It("observes metrics once per step", func() {
		r := sim.New(binaryPair())
		m := &countingMetric{}
		r.AddMetric(m)

		result, err := r.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.count).To(Equal(100))
		Expect(result.Metrics).To(HaveKeyWithValue("count", 100.0))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := sim.New(binaryPair()).Run(ctx, cfg)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("propagates kernel failures", func() {
		sys, err := gravity.NewSystem(
			gravity.Body{Name: "A", Mass: 1.0, Position: []float64{0, 0}, Velocity: []float64{0, 0}},
			gravity.Body{Name: "B", Mass: 1.0, Position: []float64{0, 0}, Velocity: []float64{0, 0}},
		)
		Expect(err).NotTo(HaveOccurred())

		_, err = sim.New(sys).Run(context.Background(), cfg)
		Expect(err).To(MatchError(gravity.ErrCoincidentBodies))
	})

	It("reports bounded energy drift for a short run", func() {
		r := sim.New(binaryPair())

		result, err := r.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.EnergyDrift).To(BeNumerically(">=", 0))
		Expect(result.EnergyDrift).To(BeNumerically("<", 0.05))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs independent systems in parallel with identical results", func() {
		cfg := sim.Config{Dt: 0.001, Steps: 50, G: 1.0, SnapshotEvery: 1}

		e := sim.NewEnsemble(sim.New(binaryPair()), sim.New(binaryPair()))
		results, err := e.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))

		// Same initial state, same deterministic kernel.
		final0 := results[0].Positions[len(results[0].Positions)-1]
		final1 := results[1].Positions[len(results[1].Positions)-1]
		Expect(final0).To(Equal(final1))
	})

	It("surfaces the first failure", func() {
		bad, err := gravity.NewSystem(
			gravity.Body{Name: "A", Mass: 1.0, Position: []float64{1, 1}, Velocity: []float64{0, 0}},
			gravity.Body{Name: "B", Mass: 1.0, Position: []float64{1, 1}, Velocity: []float64{0, 0}},
		)
		Expect(err).NotTo(HaveOccurred())

		e := sim.NewEnsemble(sim.New(binaryPair()), sim.New(bad))
		_, err = e.Run(context.Background(), sim.Config{Dt: 0.001, Steps: 10, G: 1.0})
		Expect(err).To(MatchError(gravity.ErrCoincidentBodies))
	})
})
