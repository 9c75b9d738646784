package storage

import (
	"context"
	"testing"

	"github.com/j-henkel/solarsystem/internal/gravity"
	"github.com/j-henkel/solarsystem/internal/sim"
)

func runSmallScenario(t *testing.T) (*gravity.System, sim.Config, *sim.Result) {
	t.Helper()

	sys, err := gravity.NewSystem(
		gravity.Body{Name: "A", Mass: 1.0, Position: []float64{-0.5, 0}, Velocity: []float64{0, -0.4}},
		gravity.Body{Name: "B", Mass: 1.0, Position: []float64{0.5, 0}, Velocity: []float64{0, 0.4}},
	)
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}

	cfg := sim.Config{Dt: 0.01, Steps: 20, G: 1.0, SnapshotEvery: 1}
	result, err := sim.New(sys).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return sys, cfg, result
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	sys, cfg, result := runSmallScenario(t)

	runID, err := st.Save("pair", sys.Names(), sys.Dim(), cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Scenario != "pair" {
		t.Errorf("expected scenario pair, got %s", meta.Scenario)
	}
	if meta.Steps != 20 {
		t.Errorf("expected 20 steps, got %d", meta.Steps)
	}
	if meta.Dim != 2 {
		t.Errorf("expected dim 2, got %d", meta.Dim)
	}
	if len(meta.Bodies) != 2 || meta.Bodies[0] != "A" {
		t.Errorf("unexpected body names: %v", meta.Bodies)
	}
}

func TestLoadStatesRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	sys, cfg, result := runSmallScenario(t)

	runID, err := st.Save("pair", sys.Names(), sys.Dim(), cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}

	if len(states) != len(result.Positions) {
		t.Fatalf("expected %d samples, got %d", len(result.Positions), len(states))
	}
	if len(times) != len(result.Times) {
		t.Fatalf("expected %d times, got %d", len(result.Times), len(times))
	}

	for i := range states {
		for j := range states[i] {
			if states[i][j] != result.Positions[i][j] {
				t.Fatalf("sample %d column %d: expected %g, got %g",
					i, j, result.Positions[i][j], states[i][j])
			}
		}
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	sys, cfg, result := runSmallScenario(t)
	if _, err := st.Save("pair", sys.Names(), sys.Dim(), cfg, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/path/for/test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected empty list for missing dir, got error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
