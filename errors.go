package figbridge

import "github.com/wagiedev/figbridge/internal/bridgerr"

// Re-export error types from the internal package.

// PeerError indicates the plugin explicitly returned an error payload.
type PeerError = bridgerr.PeerError

// DialError indicates a failed WebSocket connection attempt.
type DialError = bridgerr.DialError

// BridgeError is the base interface for all bridge errors.
type BridgeError = bridgerr.BridgeError

// Re-export sentinel errors from the internal package.
var (
	// ErrNotConnected indicates no live connection to the plugin exists.
	ErrNotConnected = bridgerr.ErrNotConnected

	// ErrCommandTimeout indicates no reply arrived within the command's timeout.
	ErrCommandTimeout = bridgerr.ErrCommandTimeout

	// ErrConnectionLost indicates the connection dropped while a command was pending.
	ErrConnectionLost = bridgerr.ErrConnectionLost

	// ErrBridgeClosed indicates the bridge has been shut down.
	ErrBridgeClosed = bridgerr.ErrBridgeClosed
)
