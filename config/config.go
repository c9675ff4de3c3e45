package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration
type Config struct {
	Root        string `yaml:"root"`
	PlanFile    string `yaml:"plan_file"`
	Output      string `yaml:"output"`
	HistoryDB   string `yaml:"history_db,omitempty"`
	WarnDrift   bool   `yaml:"warn_drift"`
	Parallelism int    `yaml:"parallelism,omitempty"`
}

// Default returns the configuration used without a config file
func Default() Config {
	return Config{
		Root:      "accounts",
		PlanFile:  "tfplan.out",
		Output:    "summary.md",
		WarnDrift: true,
	}
}

// LoadConfig loads configuration from file, over the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate ensures config has required fields
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	if c.PlanFile == "" {
		return fmt.Errorf("plan_file is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative")
	}
	return nil
}
