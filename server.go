package figbridge

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/figbridge/internal/bridge"
	"github.com/wagiedev/figbridge/internal/config"
	"github.com/wagiedev/figbridge/internal/conn"
	"github.com/wagiedev/figbridge/internal/tools"
)

// Version is the server version reported during MCP initialization.
const Version = "0.3.0"

// Server wires the command bridge to an MCP stdio server.
type Server struct {
	log    *slog.Logger
	cfg    Config
	bridge *bridge.Bridge
	mcp    *mcp.Server
}

// NewServer assembles a bridge server from the given options.
func NewServer(opts ...Option) *Server {
	options := applyOptions(opts)

	log := options.logger
	if log == nil {
		log = NopLogger()
	}

	cfg := config.Default()
	if options.config != nil {
		cfg = *options.config
	}

	manager := conn.NewManager(log, conn.Config{
		Endpoint:       cfg.Endpoint(),
		ReconnectDelay: cfg.ReconnectDelay(),
		Dialer:         options.dialer,
	})

	br := bridge.New(log, manager, cfg.CommandTimeout(), cfg.LongCommandTimeout())

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "figbridge",
		Version: Version,
	}, nil)

	tools.NewRegistry(log, br).Register(mcpServer)

	return &Server{
		log:    log.With("component", "server"),
		cfg:    cfg,
		bridge: br,
		mcp:    mcpServer,
	}
}

// Bridge exposes the command bridge, mainly for tests and embedding.
func (s *Server) Bridge() *bridge.Bridge {
	return s.bridge
}

// Run connects to the plugin and serves MCP over stdin/stdout until ctx
// is cancelled or the stdio transport closes.
//
// A failed initial connect is not fatal: the reconnect loop keeps
// retrying at the configured delay, and tool calls issued in the
// meantime fail fast with a not-connected error.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("Starting bridge server",
		"endpoint", s.cfg.Endpoint(),
		"command_timeout", s.cfg.CommandTimeout(),
		"long_command_timeout", s.cfg.LongCommandTimeout(),
	)

	if err := s.bridge.Connect(ctx); err != nil {
		s.log.Warn("Initial plugin connect failed, retrying in background", "error", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.mcp.Run(gCtx, &mcp.StdioTransport{})
	})

	g.Go(func() error {
		<-gCtx.Done()

		return s.bridge.Close()
	})

	err := g.Wait()

	s.log.Info("Bridge server stopped")

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
