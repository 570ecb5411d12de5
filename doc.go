// Package figbridge implements an MCP server that forwards design-document
// tool calls to a design-tool plugin over a WebSocket bridge.
//
// Tool invocations arrive over MCP stdio, are validated against their
// declared schemas, and are forwarded as JSON commands across a single
// shared WebSocket connection to the plugin. Each command carries a unique
// correlation id; concurrently issued commands multiplex onto the one
// connection and resolve independently as replies arrive. Commands fail
// with a timeout, a connection-lost error, or the plugin's own error
// payload; the process never crashes on a command failure.
//
// # Basic Usage
//
//	srv := figbridge.NewServer(
//	    figbridge.WithLogger(logger),
//	)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run connects to the plugin (retrying in the background on failure) and
// serves MCP over stdin/stdout until the context is cancelled.
//
// # Logging
//
// All diagnostics go to the logger, never to stdout: stdout carries MCP
// protocol traffic exclusively. By default logging is disabled; pass a
// stderr slog handler via WithLogger to enable it.
//
// # Error Handling
//
// Tool callers receive a uniform error payload naming the failed
// operation. Programmatic users of the bridge can test against the
// sentinel errors ErrNotConnected, ErrCommandTimeout, ErrConnectionLost
// and the PeerError type.
package figbridge
