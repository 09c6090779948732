package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete backtest configuration
type Config struct {
	Run     RunConfig     `json:"run" yaml:"run"`
	Account AccountConfig `json:"account" yaml:"account"`
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// RunConfig describes what to replay and with which strategy
type RunConfig struct {
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	DataFile      string `json:"data_file" yaml:"data_file"`
	Strategy      string `json:"strategy" yaml:"strategy"`
	HistoryWindow int    `json:"history_window" yaml:"history_window"`
	CloseAtEnd    bool   `json:"close_at_end,omitempty" yaml:"close_at_end,omitempty"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	InitialBalance float64 `json:"initial_balance" yaml:"initial_balance"`
	RiskPercent    float64 `json:"risk_percent,omitempty" yaml:"risk_percent,omitempty"`
}

// EngineConfig contains fill and accounting parameters
type EngineConfig struct {
	SlippagePct        float64 `json:"slippage_pct" yaml:"slippage_pct"`
	TransactionCostPct float64 `json:"transaction_cost_pct" yaml:"transaction_cost_pct"`
	MarginAccounting   bool    `json:"margin_accounting" yaml:"margin_accounting"`
}

// JournalConfig contains result recording parameters
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile    string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	SummariesFile string `json:"summaries_file,omitempty" yaml:"summaries_file,omitempty"`
	RunsFile      string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
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

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
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
	if c.Run.DataFile == "" {
		return fmt.Errorf("run.data_file is required")
	}
	if c.Run.Strategy == "" {
		return fmt.Errorf("run.strategy is required")
	}
	if c.Run.HistoryWindow < 0 {
		return fmt.Errorf("run.history_window must not be negative")
	}
	if c.Account.InitialBalance <= 0 {
		return fmt.Errorf("account.initial_balance must be positive")
	}
	if c.Account.RiskPercent < 0 || c.Account.RiskPercent > 1 {
		return fmt.Errorf("account.risk_percent must be between 0 and 1")
	}
	if c.Engine.SlippagePct < 0 {
		return fmt.Errorf("engine.slippage_pct must not be negative")
	}
	if c.Engine.TransactionCostPct < 0 {
		return fmt.Errorf("engine.transaction_cost_pct must not be negative")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.SummariesFile == "" || c.Journal.RunsFile == "" {
			return fmt.Errorf("journal trades_file, summaries_file and runs_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Run: RunConfig{
			Name:          "backtest",
			DataFile:      "data.csv",
			Strategy:      "ma-cross",
			HistoryWindow: 50,
		},
		Account: AccountConfig{
			InitialBalance: 10000,
			RiskPercent:    0.02,
		},
		Engine: EngineConfig{
			SlippagePct:        0,
			TransactionCostPct: 0,
			MarginAccounting:   true,
		},
		Journal: JournalConfig{
			Type:          "csv",
			TradesFile:    "trades.csv",
			SummariesFile: "summaries.csv",
			RunsFile:      "runs.csv",
		},
	}
}
