// Package config loads a benchmark scenario from a YAML file, as an
// alternative to listing commands on the command line.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultRuns is the number of measured runs when unspecified.
const DefaultRuns = 5

// Config describes one comparator invocation.
type Config struct {
	Runs     int      `yaml:"runs"`
	Warmup   int      `yaml:"warmup"`
	Export   string   `yaml:"export"`
	Commands []string `yaml:"commands"`
}

// Default returns a Config with no commands and default run counts.
func Default() *Config {
	return &Config{Runs: DefaultRuns}
}

// Load reads a scenario file.  Unknown keys are rejected so typos
// don't silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// Validate checks that the scenario can actually compare something.
func (c *Config) Validate() error {
	if len(c.Commands) < 2 {
		return errors.New("at least two commands are required")
	}
	if c.Runs < 1 {
		return errors.New("runs must be at least 1")
	}
	if c.Warmup < 0 {
		return errors.New("warmup cannot be negative")
	}
	return nil
}
