package bridgerr

import (
	"errors"
	"fmt"
)

// BridgeError is the base interface for all bridge errors.
type BridgeError interface {
	error
	IsBridgeError() bool
}

// Compile-time verification that all error types implement BridgeError.
var (
	_ BridgeError = (*DialError)(nil)
	_ BridgeError = (*PeerError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotConnected indicates no live connection to the plugin exists.
	ErrNotConnected = errors.New("not connected to plugin")

	// ErrCommandTimeout indicates no reply arrived within the command's timeout.
	ErrCommandTimeout = errors.New("command timed out")

	// ErrConnectionLost indicates the connection dropped while a command was pending.
	ErrConnectionLost = errors.New("connection to plugin lost")

	// ErrBridgeClosed indicates the bridge has been shut down.
	ErrBridgeClosed = errors.New("bridge closed")
)

// DialError indicates a failed WebSocket connection attempt.
type DialError struct {
	Endpoint string
	Err      error
}

func (e *DialError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Endpoint, e.Err)
}

func (e *DialError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *DialError) IsBridgeError() bool { return true }

// PeerError indicates the plugin explicitly returned an error payload
// for a command. The command completed its round trip; the plugin
// rejected it.
type PeerError struct {
	Command string
	Message string
}

func (e *PeerError) Error() string {
	return fmt.Sprintf("plugin error for %s: %s", e.Command, e.Message)
}

// IsBridgeError implements BridgeError.
func (e *PeerError) IsBridgeError() bool { return true }
