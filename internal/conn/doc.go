// Package conn owns the single outbound WebSocket connection to the
// design-tool plugin.
//
// The Manager is the only component that reads from, writes to, or closes
// the socket. It tracks an explicit connection state machine
// (Disconnected -> Connecting -> Connected, and Connected -> Disconnected
// on failure), delivers decoded messages to a registered callback, and
// reconnects after a fixed delay when the connection drops. Reconnection
// retries indefinitely; a failed attempt is logged, never fatal.
package conn
