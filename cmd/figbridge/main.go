// Command figbridge is an MCP stdio server bridging design-document tool
// calls to a design-tool plugin over WebSocket.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wagiedev/figbridge"
	"github.com/wagiedev/figbridge/internal/config"
)

var (
	configPath     string
	serverHost     string
	serverPort     int
	socketPath     string
	commandTimeout int
	longTimeout    int
	reconnectDelay int
	logLevel       string
	verbose        bool
)

func main() {
	root := &cobra.Command{
		Use:   "figbridge",
		Short: "MCP bridge between AI tooling and a design-tool plugin",
		Long: "figbridge serves MCP over stdio and forwards each tool call as a JSON\n" +
			"command to a design-tool plugin over a single WebSocket connection.\n" +
			"Diagnostics go to stderr; stdout carries MCP protocol traffic only.",
		SilenceUsage: true,
		RunE:         run,
	}

	flags := root.Flags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&serverHost, "server", config.DefaultServerHost, "plugin WebSocket host")
	flags.IntVar(&serverPort, "port", config.DefaultServerPort, "plugin WebSocket port")
	flags.StringVar(&socketPath, "path", config.DefaultSocketPath, "plugin WebSocket path")
	flags.IntVar(&commandTimeout, "command-timeout", config.DefaultCommandTimeoutSeconds,
		"standard command timeout in seconds")
	flags.IntVar(&longTimeout, "long-timeout", config.DefaultLongTimeoutSeconds,
		"extended command timeout in seconds (export and bulk operations)")
	flags.IntVar(&reconnectDelay, "reconnect-delay", config.DefaultReconnectDelaySeconds,
		"delay between reconnect attempts in seconds")
	flags.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "shorthand for --log-level=debug")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := figbridge.NewServer(
		figbridge.WithLogger(logger),
		figbridge.WithConfig(cfg),
	)

	return srv.Run(ctx)
}

// loadConfig layers: defaults, then the config file, then any flags the
// caller set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}

		cfg = loaded
	}

	flags := cmd.Flags()

	if flags.Changed("server") {
		cfg.ServerHost = serverHost
	}

	if flags.Changed("port") {
		cfg.ServerPort = serverPort
	}

	if flags.Changed("path") {
		cfg.SocketPath = socketPath
	}

	if flags.Changed("command-timeout") {
		cfg.CommandTimeoutSeconds = commandTimeout
	}

	if flags.Changed("long-timeout") {
		cfg.LongCommandTimeoutSeconds = longTimeout
	}

	if flags.Changed("reconnect-delay") {
		cfg.ReconnectDelaySeconds = reconnectDelay
	}

	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// newLogger builds the stderr diagnostics logger. Stdout is reserved for
// MCP protocol traffic.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level

	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
