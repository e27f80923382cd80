package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/promptquest/promptquest/internal/llm"
)

// Store backends accepted in Config.Store.
const (
	StoreSQLite = "sqlite"
	StoreBadger = "badger"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds process-level configuration.
type Config struct {
	// DBPath is the sqlite file. Empty selects the XDG data directory.
	DBPath string `env:"PROMPTQUEST_DB"`

	// Store selects where progress is kept: sqlite, badger, redis or memory.
	// The LLM event log always lives in sqlite.
	Store string `env:"PROMPTQUEST_STORE" envDefault:"sqlite"`

	BadgerDir string `env:"PROMPTQUEST_BADGER_DIR"`
	RedisAddr string `env:"PROMPTQUEST_REDIS_ADDR" envDefault:"localhost:6379"`

	LogLevel string `env:"PROMPTQUEST_LOG_LEVEL" envDefault:"warn"`
	LogMode  string `env:"PROMPTQUEST_LOG_MODE" envDefault:"dev"`
	Trace    bool   `env:"PROMPTQUEST_TRACE"`

	LLM llm.Config
}

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() (Config, error) {
	cfg, err := parseConfig(env.Options{})
	if err != nil {
		return Config{}, err
	}
	if cfg.LLM, err = llm.ConfigFromEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromMap builds a Config from an explicit variable set.
func ConfigFromMap(vars map[string]string) (Config, error) {
	cfg, err := parseConfig(env.Options{Environment: vars})
	if err != nil {
		return Config{}, err
	}
	if cfg.LLM, err = llm.ConfigFromMap(vars); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the backend selection.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreBadger, StoreRedis, StoreMemory:
		return nil
	default:
		return fmt.Errorf("unknown store %q (want sqlite, badger, redis or memory)", c.Store)
	}
}
