// Package config loads and validates the tool-level configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tradesim/backtest"
)

// Config represents the complete backtester configuration.
type Config struct {
	Backtest backtest.Config `json:"backtest" yaml:"backtest"`
	Strategy StrategyConfig  `json:"strategy" yaml:"strategy"`
	Journal  JournalConfig   `json:"journal" yaml:"journal"`
}

// StrategyConfig contains the default strategy parameters. Percent fields
// are whole percentages (5 means 5%) to keep config files readable; they
// are converted to fractions where consumed.
type StrategyConfig struct {
	DonchianWindow      int     `json:"donchian_window" yaml:"donchian_window"`
	DonchianATRPct      float64 `json:"donchian_atr_pct" yaml:"donchian_atr_pct"`
	DonchianSLPct       float64 `json:"donchian_sl_pct" yaml:"donchian_sl_pct"`
	DonchianTPPct       float64 `json:"donchian_tp_pct" yaml:"donchian_tp_pct"`
	DonchianTrailingPct float64 `json:"donchian_trailing_pct" yaml:"donchian_trailing_pct"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Backtest: backtest.DefaultConfig(),
		Strategy: StrategyConfig{
			DonchianWindow:      240,
			DonchianATRPct:      0.3,
			DonchianSLPct:       5,
			DonchianTPPct:       15,
			DonchianTrailingPct: 5,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}

// LoadFromFile loads configuration from a YAML or JSON file, layered on
// top of Default: fields absent from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", jsonErr)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML (.yaml/.yml) or JSON.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Backtest.Validate(); err != nil {
		return err
	}
	if c.Strategy.DonchianWindow <= 0 {
		return fmt.Errorf("strategy.donchian_window must be positive")
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}
