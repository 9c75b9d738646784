package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/j-henkel/solarsystem/internal/gravity"
)

const (
	DefaultDt    = 3600.0
	DefaultSteps = 8760
)

// Config describes a full simulation scenario: the bodies and the step
// parameters. A zero G means the physical gravitational constant.
type Config struct {
	Scenario      string       `yaml:"scenario"`
	Dt            float64      `yaml:"dt"`
	Steps         int          `yaml:"steps"`
	G             float64      `yaml:"g,omitempty"`
	FixMomentum   bool         `yaml:"fix_momentum"`
	SnapshotEvery int          `yaml:"snapshot_every,omitempty"`
	Bodies        []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name     string    `yaml:"name"`
	Mass     float64   `yaml:"mass"`
	Position []float64 `yaml:"position"`
	Velocity []float64 `yaml:"velocity"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      "sun_earth",
		Dt:            DefaultDt,
		Steps:         DefaultSteps,
		SnapshotEvery: 24,
		Bodies: []BodyConfig{
			{Name: "sun", Mass: 1.989e30, Position: []float64{0, 0, 0}, Velocity: []float64{0, 0, 0}},
			{Name: "earth", Mass: 5.972e24, Position: []float64{1.496e11, 0, 0}, Velocity: []float64{0, 2.9783e4, 0}},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GravitationalConstant returns the configured G, or the physical constant
// when the field is unset.
func (c *Config) GravitationalConstant() float64 {
	if c.G == 0 {
		return gravity.G
	}
	return c.G
}

// GravityBodies converts the configured body list into gravity.Body values.
func (c *Config) GravityBodies() []gravity.Body {
	bodies := make([]gravity.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = gravity.Body{
			Name:     b.Name,
			Mass:     b.Mass,
			Position: b.Position,
			Velocity: b.Velocity,
		}
	}
	return bodies
}
