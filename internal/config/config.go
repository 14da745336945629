package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/hance08/kea-ledger/internal/constants"
)

type Config struct {
	Database   DatabaseConfig  `mapstructure:"database"`
	Defaults   DefaultsConfig  `mapstructure:"defaults"`
	Reconcile  ReconcileConfig `mapstructure:"reconcile"`
	Import     ImportConfig    `mapstructure:"import"`
	Log        LogConfig       `mapstructure:"log"`
	ConfigPath string          `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type DefaultsConfig struct {
	Currency string `mapstructure:"currency"`
}

type ReconcileConfig struct {
	DateWindowDays int `mapstructure:"date_window_days"`
}

type ImportConfig struct {
	CSV CSVConfig `mapstructure:"csv"`
}

type CSVConfig struct {
	DateColumn        string `mapstructure:"date_column"`
	AmountColumn      string `mapstructure:"amount_column"`
	DescriptionColumn string `mapstructure:"description_column"`
	ExternalIDColumn  string `mapstructure:"external_id_column"`
	DateFormat        string `mapstructure:"date_format"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Defaults: DefaultsConfig{Currency: "USD"},
		Reconcile: ReconcileConfig{
			DateWindowDays: constants.DefaultDateWindowDays,
		},
		Import: ImportConfig{
			CSV: CSVConfig{
				DateColumn:        "date",
				AmountColumn:      "amount",
				DescriptionColumn: "description",
				ExternalIDColumn:  "fitid",
				DateFormat:        constants.DateFormat,
			},
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.Reconcile.DateWindowDays < 0 {
		return fmt.Errorf("reconcile.date_window_days must not be negative (got %d)", c.Reconcile.DateWindowDays)
	}

	csv := c.Import.CSV
	for key, val := range map[string]string{
		"import.csv.date_column":        csv.DateColumn,
		"import.csv.amount_column":      csv.AmountColumn,
		"import.csv.description_column": csv.DescriptionColumn,
		"import.csv.date_format":        csv.DateFormat,
	} {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json (got %q)", c.Log.Format)
	}

	return nil
}
