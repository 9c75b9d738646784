package config

import "sort"

var Presets = map[string]*Config{
	"sun_earth": DefaultConfig(),
	"inner_planets": {
		Scenario: "inner_planets", Dt: 3600, Steps: 24 * 687, SnapshotEvery: 24,
		Bodies: []BodyConfig{
			{Name: "sun", Mass: 1.989e30, Position: []float64{0, 0, 0}, Velocity: []float64{0, 0, 0}},
			{Name: "mercury", Mass: 3.301e23, Position: []float64{5.791e10, 0, 0}, Velocity: []float64{0, 4.787e4, 0}},
			{Name: "venus", Mass: 4.867e24, Position: []float64{1.082e11, 0, 0}, Velocity: []float64{0, 3.502e4, 0}},
			{Name: "earth", Mass: 5.972e24, Position: []float64{1.496e11, 0, 0}, Velocity: []float64{0, 2.9783e4, 0}},
			{Name: "mars", Mass: 6.417e23, Position: []float64{2.279e11, 0, 0}, Velocity: []float64{0, 2.407e4, 0}},
		},
	},
	"binary": {
		Scenario: "binary", Dt: 1000, Steps: 2000, FixMomentum: true,
		Bodies: []BodyConfig{
			{Name: "alpha", Mass: 1e30, Position: []float64{-1e10, 0, 0}, Velocity: []float64{0, -4.08e4, 0}},
			{Name: "beta", Mass: 1e30, Position: []float64{1e10, 0, 0}, Velocity: []float64{0, 4.08e4, 0}},
		},
	},
	// Chenciner-Montgomery figure-eight orbit, unit masses, G=1.
	"figure8": {
		Scenario: "figure8", Dt: 0.001, Steps: 10000, G: 1.0, SnapshotEvery: 10,
		Bodies: []BodyConfig{
			{Name: "one", Mass: 1, Position: []float64{0.97000436, -0.24308753}, Velocity: []float64{0.46620368, 0.43236573}},
			{Name: "two", Mass: 1, Position: []float64{-0.97000436, 0.24308753}, Velocity: []float64{0.46620368, 0.43236573}},
			{Name: "three", Mass: 1, Position: []float64{0, 0}, Velocity: []float64{-0.93240737, -0.86473146}},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
