// Package config loads server settings from an optional YAML file, then
// CHESS_* environment variables. Command line flags are applied by main.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

type Config struct {
	Addr         string `yaml:"addr"`
	AllowOrigins string `yaml:"allow_origins"`
	LogLevel     string `yaml:"log_level"`
	Store        Store  `yaml:"store"`
}

type Store struct {
	Driver  string `yaml:"driver"`
	DataDir string `yaml:"data_dir"`
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		LogLevel:     "info",
		Store: Store{
			Driver:  StoreMemory,
			DataDir: "data",
		},
	}
}

// Load starts from Default, overlays the YAML file at path (skipped when path
// is empty) and then the environment. The result is not validated; callers
// apply their own overrides first and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("'%s': %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("'%s': %w", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("CHESS_ADDR", &c.Addr)
	set("CHESS_ALLOW_ORIGINS", &c.AllowOrigins)
	set("CHESS_LOG_LEVEL", &c.LogLevel)
	set("CHESS_STORE", &c.Store.Driver)
	set("CHESS_DATA_DIR", &c.Store.DataDir)
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StoreBadger:
		if c.Store.DataDir == "" {
			return fmt.Errorf("store %q needs a data_dir", StoreBadger)
		}
	default:
		return fmt.Errorf("unknown store driver %q; valid: %s, %s", c.Store.Driver, StoreMemory, StoreBadger)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
