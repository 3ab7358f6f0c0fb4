package config

import (
	"fmt"
	"os"

	"github.com/san-kum/numint/quad"
	"gopkg.in/yaml.v3"
)

// Job describes one integration: an integrand from the catalog, an
// interval, and quadrature settings. Infinite bounds are written as .inf
// in yaml.
type Job struct {
	Name     string             `yaml:"name"`
	Function string             `yaml:"function"`
	Params   map[string]float64 `yaml:"params,omitempty"`
	Lower    float64            `yaml:"lower"`
	Upper    float64            `yaml:"upper"`
	Rule     string             `yaml:"rule"`
	Strategy string             `yaml:"strategy"`
	Eps      float64            `yaml:"eps"`
	MaxSteps int                `yaml:"max_steps"`
	MinSteps int                `yaml:"min_steps"`
	Degree   int                `yaml:"degree"`
}

// Config is a batch of integration jobs.
type Config struct {
	Jobs []Job `yaml:"jobs"`
}

// DefaultJob returns a Gaussian CDF slice under the default
// Romberg/trapezoidal pairing.
func DefaultJob() Job {
	return Job{
		Name:     "gaussian",
		Function: "gaussian",
		Lower:    -1,
		Upper:    1,
		Rule:     quad.Trapezoidal.String(),
		Strategy: quad.Romberg.String(),
		Eps:      quad.DefaultEps,
	}
}

// DefaultConfig returns a single-job default configuration.
func DefaultConfig() *Config {
	return &Config{Jobs: []Job{DefaultJob()}}
}

// Load reads a yaml job file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Jobs) == 0 {
		return nil, fmt.Errorf("config %s: no jobs", path)
	}
	return cfg, nil
}

// Save writes a yaml job file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Settings converts the job's quadrature fields to quad.Settings; zero
// values fall through to the library defaults.
func (j Job) Settings() (quad.Settings, error) {
	set := quad.Settings{
		Eps:           j.Eps,
		MaxSteps:      j.MaxSteps,
		MinSteps:      j.MinSteps,
		RombergDegree: j.Degree,
	}
	if j.Rule != "" {
		r, err := quad.ParseRule(j.Rule)
		if err != nil {
			return quad.Settings{}, err
		}
		set.Rule = r
	}
	if j.Strategy != "" {
		s, err := quad.ParseStrategy(j.Strategy)
		if err != nil {
			return quad.Settings{}, err
		}
		set.Strategy = s
	}
	return set, nil
}
