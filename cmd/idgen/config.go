package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/codewandler/idgen-go/core/uid"
)

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
	Queue   string `mapstructure:"queue"`
}

type Config struct {
	Capacity    int        `mapstructure:"capacity"`
	Count       int        `mapstructure:"count"`
	LogLevel    string     `mapstructure:"log_level"`
	MetricsAddr string     `mapstructure:"metrics_addr"`
	NATS        NATSConfig `mapstructure:"nats"`
}

// loadConfig reads the optional YAML file at path and IDGEN_* environment
// variables, e.g. IDGEN_NATS_URL.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("capacity", uid.DefaultCapacity)
	v.SetDefault("count", 3)
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "")
	v.SetDefault("nats.queue", "")

	v.SetEnvPrefix("idgen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Capacity < 1 {
		return errors.New("capacity must be >= 1")
	}
	if c.Count < 0 {
		return errors.New("count must be >= 0")
	}
	return nil
}

func (c *Config) level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// serving reports whether the process keeps running after the demo requests.
func (c *Config) serving() bool {
	return c.NATS.URL != "" || c.MetricsAddr != ""
}
