package benchmarks

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the persistent flags plus the common hyper-parameters, so a
// run can be pinned down in a file instead of a long command line. Zero
// fields keep the flag or default value.
type Config struct {
	Episodes int    `yaml:"episodes"`
	Horizon  int    `yaml:"horizon"`
	Save     string `yaml:"save"`
	Runs     int    `yaml:"runs"`
	Seed     uint64 `yaml:"seed"`

	Alpha   float64 `yaml:"alpha"`
	Gamma   float64 `yaml:"gamma"`
	Epsilon float64 `yaml:"epsilon"`
	Lambda  float64 `yaml:"lambda"`
}

// loadConfig reads the --config file when given and folds it into the flag
// values. Called at the start of every command.
func loadConfig() (*Config, error) {
	cfg := &Config{}
	if configFile != "" {
		bs, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(bs, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if cfg.Episodes != 0 {
		episodes = cfg.Episodes
	}
	if cfg.Horizon != 0 {
		horizon = cfg.Horizon
	}
	if cfg.Save != "" {
		saveFile = cfg.Save
	}
	if cfg.Runs != 0 {
		runs = cfg.Runs
	}
	if cfg.Seed != 0 {
		seed = cfg.Seed
	}
	return cfg, nil
}

// alphaOr returns the configured step size, or def when the config left it 0
func (c *Config) alphaOr(def float64) float64 {
	if c.Alpha != 0 {
		return c.Alpha
	}
	return def
}

func (c *Config) gammaOr(def float64) float64 {
	if c.Gamma != 0 {
		return c.Gamma
	}
	return def
}

func (c *Config) epsilonOr(def float64) float64 {
	if c.Epsilon != 0 {
		return c.Epsilon
	}
	return def
}

func (c *Config) lambdaOr(def float64) float64 {
	if c.Lambda != 0 {
		return c.Lambda
	}
	return def
}
