// Package bridge composes the connection manager and the request
// correlator into the single entry point tool handlers use to talk to
// the plugin.
//
// Policy: SendCommand invoked while disconnected fails fast with
// bridgerr.ErrNotConnected rather than queueing behind a connect. The
// reconnect loop runs independently; callers retry if they want to.
package bridge
