package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config describes one tradegate run: logging, the processor, the accounts
// to register and the trades to submit.
type Config struct {
	Log       LogConfig       `json:"log" yaml:"log"`
	Processor ProcessorConfig `json:"processor" yaml:"processor"`
	Accounts  []AccountConfig `json:"accounts" yaml:"accounts"`
	Trades    []TradeConfig   `json:"trades,omitempty" yaml:"trades,omitempty"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level"` // debug, info, warn, error
	Development bool   `json:"development" yaml:"development"`
}

type ProcessorConfig struct {
	PollInterval string `json:"poll_interval" yaml:"poll_interval"` // e.g. "10ms"
}

// ParsePollInterval converts the poll interval string to a duration.
// Empty means the processor default.
func (p ProcessorConfig) ParsePollInterval() (time.Duration, error) {
	if p.PollInterval == "" {
		return 0, nil
	}
	return time.ParseDuration(p.PollInterval)
}

type AccountConfig struct {
	ID          string          `json:"id" yaml:"id"`
	Balance     decimal.Decimal `json:"balance" yaml:"balance"`
	MaxExposure decimal.Decimal `json:"max_exposure" yaml:"max_exposure"`
	StopLoss    decimal.Decimal `json:"stop_loss" yaml:"stop_loss"`
}

// TradeConfig is one scripted submission.
type TradeConfig struct {
	Account  string          `json:"account" yaml:"account"`
	Symbol   string          `json:"symbol" yaml:"symbol"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Quantity decimal.Decimal `json:"quantity" yaml:"quantity"`
}

type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	OutcomesFile string `json:"outcomes_file,omitempty" yaml:"outcomes_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type MetricsConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"` // e.g. ":9090"; empty disables
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

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

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	if _, err := c.Processor.ParsePollInterval(); err != nil {
		return fmt.Errorf("processor.poll_interval: %w", err)
	}

	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}
	seen := make(map[string]bool, len(c.Accounts))
	for i, a := range c.Accounts {
		if a.ID == "" {
			return fmt.Errorf("accounts[%d].id is required", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("accounts[%d]: duplicate id %q", i, a.ID)
		}
		seen[a.ID] = true
		if !a.MaxExposure.IsPositive() {
			return fmt.Errorf("accounts[%d].max_exposure must be positive", i)
		}
	}

	// Trades may name unknown accounts on purpose; those are reported as
	// AccountNotFound at run time.
	for i, t := range c.Trades {
		if t.Account == "" {
			return fmt.Errorf("trades[%d].account is required", i)
		}
		if t.Symbol == "" {
			return fmt.Errorf("trades[%d].symbol is required", i)
		}
		if !t.Price.IsPositive() || !t.Quantity.IsPositive() {
			return fmt.Errorf("trades[%d]: price and quantity must be positive", i)
		}
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.OutcomesFile == "" {
			return fmt.Errorf("journal outcomes_file required for CSV type")
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

// Default reproduces the classic demo: one account and one trade too large
// for its balance.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Processor: ProcessorConfig{
			PollInterval: "10ms",
		},
		Accounts: []AccountConfig{
			{
				ID:          "user1",
				Balance:     decimal.NewFromInt(1000),
				MaxExposure: decimal.NewFromInt(5000),
				StopLoss:    decimal.NewFromInt(500),
			},
		},
		Trades: []TradeConfig{
			{
				Account:  "user1",
				Symbol:   "BTCUSD",
				Price:    decimal.NewFromInt(50000),
				Quantity: decimal.RequireFromString("0.1"),
			},
		},
		Journal: JournalConfig{Type: "none"},
	}
}
