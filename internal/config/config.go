package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up by the CLI.
const DefaultFile = "agencia.yaml"

// Config represents the top-level agencia.yaml configuration.
type Config struct {
	Bank     BankConfig     `yaml:"bank"`
	Checking CheckingConfig `yaml:"checking"`
	Display  DisplayConfig  `yaml:"display"`
	Log      LogConfig      `yaml:"log"`
}

// BankConfig identifies the bank and its branch.
type BankConfig struct {
	Name           string `yaml:"name"`
	BranchCode     string `yaml:"branch_code"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

// CheckingConfig sets the limits given to new checking accounts.
type CheckingConfig struct {
	PerWithdrawalLimit   decimal.Decimal `yaml:"per_withdrawal_limit"`
	DailyWithdrawalLimit int             `yaml:"daily_withdrawal_limit"`
}

// DisplayConfig controls how statements are rendered.
type DisplayConfig struct {
	TimestampFormat string `yaml:"timestamp_format"` // Go time layout
}

// LogConfig controls the driver's structured logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SlogLevel parses Level. An empty level is info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parsing log level %q: %w", l.Level, err)
	}
	return level, nil
}

// Load reads an agencia.yaml file from disk. Fields missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the values the bank cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.Bank.BranchCode == "" {
		errs = append(errs, errors.New("bank.branch_code is required"))
	}
	if !c.Checking.PerWithdrawalLimit.IsPositive() {
		errs = append(errs, fmt.Errorf("checking.per_withdrawal_limit must be greater than zero, got %s", c.Checking.PerWithdrawalLimit))
	}
	if c.Checking.DailyWithdrawalLimit < 0 {
		errs = append(errs, fmt.Errorf("checking.daily_withdrawal_limit must not be negative, got %d", c.Checking.DailyWithdrawalLimit))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Default returns a Config with the limits of a standard checking account.
func Default() *Config {
	return &Config{
		Bank: BankConfig{
			Name:           "Agencia",
			BranchCode:     "0001",
			CurrencySymbol: "R$",
		},
		Checking: CheckingConfig{
			PerWithdrawalLimit:   decimal.NewFromInt(500),
			DailyWithdrawalLimit: 3,
		},
		Display: DisplayConfig{
			TimestampFormat: "02/01/2006 15:04:05",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
