// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultAddr         = ":13177"
	DefaultRestartDelay = 2 * time.Second
	DefaultSendQueue    = 64
	DefaultLogLevel     = "info"
	DefaultAllowOrigin  = "*"
)

// Config holds every tunable of the server process.
type Config struct {
	// Addr is the listen address for the HTTP/websocket endpoint.
	Addr string
	// RestartDelay is the pause between a win and the automatic redeal.
	RestartDelay time.Duration
	// SendQueue is the per-connection outbound message buffer.
	SendQueue int
	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string
	// AllowOrigin is the accepted websocket Origin, "*" for any.
	AllowOrigin string
}

// Load reads the configuration from DURAK_* environment variables,
// falling back to defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:         envOr("DURAK_ADDR", DefaultAddr),
		RestartDelay: DefaultRestartDelay,
		SendQueue:    DefaultSendQueue,
		LogLevel:     envOr("DURAK_LOG_LEVEL", DefaultLogLevel),
		AllowOrigin:  envOr("DURAK_ALLOW_ORIGIN", DefaultAllowOrigin),
	}

	if val := os.Getenv("DURAK_RESTART_DELAY"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return nil, fmt.Errorf("parse DURAK_RESTART_DELAY: %w", err)
		}
		cfg.RestartDelay = d
	}

	if val := os.Getenv("DURAK_SEND_QUEUE"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("parse DURAK_SEND_QUEUE: %q is not a positive integer", val)
		}
		cfg.SendQueue = n
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
