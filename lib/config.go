package lib

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	MaxDepth  int           `toml:"max_depth"`
	LogLevel  string        `toml:"log_level"`
	Precision int           `toml:"precision"`
	History   HistoryConfig `toml:"history"`
}

type HistoryConfig struct {
	// DSN is a lib/pq connection string. Empty disables history.
	DSN string `toml:"dsn"`
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:  DefaultMaxDepth,
		LogLevel:  "info",
		Precision: -1,
	}
}

// LoadConfig reads a TOML file on top of the defaults and then applies the
// CALC_* environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	return loadConfig(path, os.LookupEnv)
}

func loadConfig(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CALC_MAX_DEPTH"); ok {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CALC_MAX_DEPTH %q: %w", v, err)
		}
		c.MaxDepth = depth
	}
	if v, ok := lookup("CALC_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("CALC_HISTORY_DSN"); ok {
		c.History.DSN = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.Precision < -1 {
		return fmt.Errorf("precision must be -1 or more, got %d", c.Precision)
	}
	return nil
}

// FormatResult renders a value with the configured precision.
func (c Config) FormatResult(v float64) string {
	return strconv.FormatFloat(v, 'g', c.Precision, 64)
}
