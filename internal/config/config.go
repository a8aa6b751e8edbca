package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every knob for a rebalance run. Nothing here has a
// process-wide default - the CLI populates it from the config file and
// flag overrides, then passes it down explicitly.
type Config struct {
	InputPath   string  `yaml:"input_path"`
	TradesPath  string  `yaml:"trades_output"`
	SummaryPath string  `yaml:"summary_output"`
	OldDate     string  `yaml:"old_date"`
	NewDate     string  `yaml:"new_date"`
	Cutoff      float64 `yaml:"cutoff"`
	Capital     float64 `yaml:"capital"`
	RoundDigits int     `yaml:"round_digits"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input_path is required")
	}
	if c.TradesPath == "" {
		return fmt.Errorf("trades_output is required")
	}
	if c.SummaryPath == "" {
		return fmt.Errorf("summary_output is required")
	}
	if c.OldDate == "" || c.NewDate == "" {
		return fmt.Errorf("old_date and new_date are required")
	}
	if c.RoundDigits < 0 {
		return fmt.Errorf("round_digits must be >= 0, got %d", c.RoundDigits)
	}
	return nil
}
