// Package config loads CLI settings from flags, environment and an optional
// config file through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mahdiidarabi/dlsig/pkg/dsa"
)

// EnvPrefix prefixes every environment variable read, e.g. DSA_WORKERS.
const EnvPrefix = "DSA"

// Keys understood by Load.
const (
	KeyWorkers         = "workers"
	KeyIterations      = "iterations"
	KeyMaxSignAttempts = "max_sign_attempts"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
)

// DefaultIterations is the number of signs and verifies in a benchmark run.
const DefaultIterations = 10000

// Config holds the resolved settings of one run.
type Config struct {
	Workers         int    // 0 = one per CPU
	Iterations      int    // signs and verifies per benchmark phase
	MaxSignAttempts int    // nonce draws before signing gives up
	LogLevel        string // zerolog level name
	LogFormat       string // "text" or "json"
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyIterations, DefaultIterations)
	v.SetDefault(KeyMaxSignAttempts, dsa.DefaultMaxSignAttempts)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds flags named like the keys (with dashes) to v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if bindErr := v.BindPFlag(key, f); bindErr != nil && err == nil {
			err = bindErr
		}
	})
	return err
}

// ReadFile merges the config file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load resolves and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Workers:         v.GetInt(KeyWorkers),
		Iterations:      v.GetInt(KeyIterations),
		MaxSignAttempts: v.GetInt(KeyMaxSignAttempts),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.MaxSignAttempts <= 0 {
		return fmt.Errorf("max_sign_attempts must be positive, got %d", c.MaxSignAttempts)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
