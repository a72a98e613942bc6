package main

import (
	"log/slog"
	"time"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" envDefault:"8080"`
	DSN             string        `env:"PG_DSN,required"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Path to the YAML curve/limits config; empty runs on defaults.
	GameConfigPath string `env:"GAME_CONFIG_PATH"`
	PoolID         string `env:"GAME_POOL_ID" envDefault:"house"`
}
