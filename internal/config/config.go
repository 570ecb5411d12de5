// Package config provides configuration for the bridge server.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the externally configurable constants.
const (
	DefaultServerHost            = "localhost"
	DefaultServerPort            = 3055
	DefaultSocketPath            = "/"
	DefaultCommandTimeoutSeconds = 30
	DefaultLongTimeoutSeconds    = 60
	DefaultReconnectDelaySeconds = 2
	DefaultLogLevel              = "info"
)

// Config holds every tunable of the bridge server.
type Config struct {
	// ServerHost is the plugin WebSocket host.
	ServerHost string `yaml:"server_host"`

	// ServerPort is the plugin WebSocket port.
	ServerPort int `yaml:"server_port"`

	// SocketPath is the WebSocket endpoint path.
	SocketPath string `yaml:"socket_path"`

	// CommandTimeoutSeconds is the standard per-command timeout.
	CommandTimeoutSeconds int `yaml:"command_timeout_seconds"`

	// LongCommandTimeoutSeconds is the extended tier for export/bulk commands.
	LongCommandTimeoutSeconds int `yaml:"long_command_timeout_seconds"`

	// ReconnectDelaySeconds is the fixed wait between reconnect attempts.
	ReconnectDelaySeconds int `yaml:"reconnect_delay_seconds"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServerHost:                DefaultServerHost,
		ServerPort:                DefaultServerPort,
		SocketPath:                DefaultSocketPath,
		CommandTimeoutSeconds:     DefaultCommandTimeoutSeconds,
		LongCommandTimeoutSeconds: DefaultLongTimeoutSeconds,
		ReconnectDelaySeconds:     DefaultReconnectDelaySeconds,
		LogLevel:                  DefaultLogLevel,
	}
}

// Load reads a YAML config file layered over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the bridge cannot run with.
func (c Config) Validate() error {
	if c.ServerHost == "" {
		return fmt.Errorf("server_host must not be empty")
	}

	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("server_port %d out of range", c.ServerPort)
	}

	if c.CommandTimeoutSeconds <= 0 {
		return fmt.Errorf("command_timeout_seconds must be positive")
	}

	if c.LongCommandTimeoutSeconds <= 0 {
		return fmt.Errorf("long_command_timeout_seconds must be positive")
	}

	if c.ReconnectDelaySeconds <= 0 {
		return fmt.Errorf("reconnect_delay_seconds must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	return nil
}

// CommandTimeout returns the standard timeout tier.
func (c Config) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// LongCommandTimeout returns the extended timeout tier.
func (c Config) LongCommandTimeout() time.Duration {
	return time.Duration(c.LongCommandTimeoutSeconds) * time.Second
}

// ReconnectDelay returns the wait between reconnect attempts.
func (c Config) ReconnectDelay() time.Duration {
	return time.Duration(c.ReconnectDelaySeconds) * time.Second
}

// Endpoint derives the plugin WebSocket URL. Local hosts use the
// plaintext scheme; any other host uses the secure scheme.
func (c Config) Endpoint() string {
	scheme := "wss"
	if c.isLocalHost() {
		scheme = "ws"
	}

	path := c.SocketPath
	if path == "" {
		path = DefaultSocketPath
	}

	return fmt.Sprintf("%s://%s:%d%s", scheme, c.ServerHost, c.ServerPort, path)
}

func (c Config) isLocalHost() bool {
	switch c.ServerHost {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
