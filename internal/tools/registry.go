package tools

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CommandSender forwards commands to the plugin. Satisfied by
// bridge.Bridge; tests substitute fakes.
type CommandSender interface {
	// SendCommand forwards a command with the standard timeout tier.
	SendCommand(ctx context.Context, name string, params map[string]any) (map[string]any, error)

	// SendLongCommand forwards a command with the extended timeout tier,
	// for export-style and bulk operations.
	SendLongCommand(ctx context.Context, name string, params map[string]any) (map[string]any, error)
}

// Registry declares every tool and adapts bridge outcomes to the MCP
// response shape.
type Registry struct {
	log    *slog.Logger
	bridge CommandSender
}

// NewRegistry creates a registry forwarding through bridge.
func NewRegistry(log *slog.Logger, bridge CommandSender) *Registry {
	return &Registry{
		log:    log.With("component", "tools"),
		bridge: bridge,
	}
}

// Register adds every declared tool to the MCP server.
func (r *Registry) Register(server *mcp.Server) {
	all := append(r.nodeTools(), r.documentTools()...)

	for _, t := range all {
		r.log.Debug("Registering tool", "tool", t.def.Name)
		server.AddTool(t.def, t.handler)
	}
}

// tool pairs a declaration with its handler.
type tool struct {
	def     *mcp.Tool
	handler mcp.ToolHandler
}
