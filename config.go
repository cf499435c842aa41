package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	backendStatic = "static"
	backendSQLite = "sqlite"
)

// Config is the validated runtime configuration.
type Config struct {
	Addr           string        `mapstructure:"addr"`
	LogLevel       string        `mapstructure:"log-level"`
	Backend        string        `mapstructure:"backend"`
	DefaultWidth   int           `mapstructure:"default-width"`
	AllowedOrigins []string      `mapstructure:"allowed-origins"`
	Metrics        bool          `mapstructure:"metrics"`
	Color          bool          `mapstructure:"color"`
	CacheTTL       time.Duration `mapstructure:"cache-ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("log-level", "info")
	v.SetDefault("backend", backendStatic)
	v.SetDefault("default-width", 1024)
	v.SetDefault("allowed-origins", []string{"*"})
	v.SetDefault("metrics", true)
	v.SetDefault("color", true)
	v.SetDefault("cache-ttl", 10*time.Minute)
}

// initConfig points viper at the config file and environment.
func initConfig(v *viper.Viper) {
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".vibe-insights")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	v.SetEnvPrefix("VIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
}

// readConfigFile merges the config file if there is one. A missing file is
// fine; defaults, env and flags still apply.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// loadConfig unmarshals and validates whatever v currently holds.
func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Backend {
	case backendStatic, backendSQLite:
	default:
		return fmt.Errorf("invalid backend %q: must be %q or %q", c.Backend, backendStatic, backendSQLite)
	}
	if c.DefaultWidth <= 0 {
		return fmt.Errorf("default-width must be positive, got %d", c.DefaultWidth)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache-ttl must not be negative, got %s", c.CacheTTL)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log-level: %w", err)
	}
	return nil
}

// newLogger builds a production zap logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}
