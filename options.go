package figbridge

import (
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/wagiedev/figbridge/internal/config"
)

// Config holds every tunable of the bridge server.
// See internal/config for field documentation and defaults.
type Config = config.Config

// Option configures a Server using the functional options pattern.
type Option func(*serverOptions)

type serverOptions struct {
	logger *slog.Logger
	config *Config
	dialer *websocket.Dialer
}

func applyOptions(opts []Option) *serverOptions {
	options := &serverOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for diagnostics.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *serverOptions) {
		o.logger = logger
	}
}

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(o *serverOptions) {
		o.config = &cfg
	}
}

// WithDialer injects a custom websocket dialer, mainly for testing.
func WithDialer(dialer *websocket.Dialer) Option {
	return func(o *serverOptions) {
		o.dialer = dialer
	}
}
