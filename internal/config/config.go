package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/nbody"
	"github.com/san-kum/orrery/internal/vec3"
)

const (
	DefaultDt          = 0.01
	DefaultSteps       = 1000
	DefaultSampleEvery = 10
)

type Config struct {
	Dt          float64      `yaml:"dt"`
	Steps       int          `yaml:"steps"`
	SampleEvery int          `yaml:"sample_every"`
	Validate    bool         `yaml:"validate"`
	Bodies      []BodyConfig `yaml:"bodies"`
}

// BodyConfig describes one body of a custom system. An empty Bodies
// list in Config selects the canonical outer-planets setup instead.
type BodyConfig struct {
	Name string     `yaml:"name"`
	Mass float64    `yaml:"mass"`
	Pos  [3]float64 `yaml:"pos,flow"`
	Vel  [3]float64 `yaml:"vel,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
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

// System builds the initial system described by the config: the
// canonical five bodies when no custom bodies are given, otherwise a
// barycentric system assembled from the listed bodies in order.
func (c *Config) System() (nbody.System, error) {
	if len(c.Bodies) == 0 {
		return nbody.New(), nil
	}

	bodies := make([]nbody.Body, len(c.Bodies))
	seen := make(map[string]bool, len(c.Bodies))
	for i, bc := range c.Bodies {
		if bc.Name == "" {
			return nbody.System{}, fmt.Errorf("body %d: name is required", i)
		}
		if seen[bc.Name] {
			return nbody.System{}, fmt.Errorf("duplicate body name %q", bc.Name)
		}
		seen[bc.Name] = true
		if bc.Mass <= 0 {
			return nbody.System{}, fmt.Errorf("body %q: mass must be positive", bc.Name)
		}
		bodies[i] = nbody.Body{
			Name: bc.Name,
			Mass: bc.Mass,
			Pos:  vec3.Vec{X: bc.Pos[0], Y: bc.Pos[1], Z: bc.Pos[2]},
			Vel:  vec3.Vec{X: bc.Vel[0], Y: bc.Vel[1], Z: bc.Vel[2]},
		}
	}
	return nbody.FromBodies(bodies), nil
}
