package config

import (
	"path/filepath"
	"testing"

	"github.com/j-henkel/solarsystem/internal/gravity"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "sun_earth" {
		t.Errorf("expected scenario sun_earth, got %s", cfg.Scenario)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if len(cfg.Bodies) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(cfg.Bodies))
	}
}

func TestGravitationalConstant(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.GravitationalConstant() != gravity.G {
		t.Error("unset g should default to the physical constant")
	}

	cfg.G = 1.0
	if cfg.GravitationalConstant() != 1.0 {
		t.Error("explicit g should be returned as-is")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("figure8")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.G != 1.0 {
		t.Errorf("expected g=1 for figure8, got %f", cfg.G)
	}
	if len(cfg.Bodies) != 3 {
		t.Errorf("expected 3 bodies, got %d", len(cfg.Bodies))
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Error("presets should be sorted")
		}
	}
}

func TestPresetsBuildValidSystems(t *testing.T) {
	for name, cfg := range Presets {
		if _, err := gravity.NewSystem(cfg.GravityBodies()...); err != nil {
			t.Errorf("preset %s does not build: %v", name, err)
		}
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	orig := GetPreset("binary")
	if err := Save(path, orig); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Scenario != orig.Scenario || loaded.Dt != orig.Dt || loaded.Steps != orig.Steps {
		t.Errorf("round trip changed scalars: %+v vs %+v", loaded, orig)
	}
	if !loaded.FixMomentum {
		t.Error("fix_momentum lost in round trip")
	}
	if len(loaded.Bodies) != len(orig.Bodies) {
		t.Fatalf("expected %d bodies, got %d", len(orig.Bodies), len(loaded.Bodies))
	}
	for i := range orig.Bodies {
		if loaded.Bodies[i].Name != orig.Bodies[i].Name {
			t.Errorf("body %d: expected name %s, got %s", i, orig.Bodies[i].Name, loaded.Bodies[i].Name)
		}
		if loaded.Bodies[i].Position[0] != orig.Bodies[i].Position[0] {
			t.Errorf("body %d: position changed in round trip", i)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
