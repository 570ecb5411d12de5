package figbridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/figbridge/internal/config"
)

func TestNewServer_Defaults(t *testing.T) {
	srv := NewServer()
	defer srv.Bridge().Close()

	require.NotNil(t, srv.Bridge())
	assert.False(t, srv.Bridge().Connected())
	assert.Equal(t, config.Default(), srv.cfg)
}

func TestNewServer_WithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ServerPort = 9000
	cfg.CommandTimeoutSeconds = 5

	srv := NewServer(WithConfig(cfg))
	defer srv.Bridge().Close()

	assert.Equal(t, 9000, srv.cfg.ServerPort)
	assert.Equal(t, 5, srv.cfg.CommandTimeoutSeconds)
}

func TestNewServer_WithLogger(t *testing.T) {
	logger := NopLogger()

	srv := NewServer(WithLogger(logger))
	defer srv.Bridge().Close()

	require.NotNil(t, srv.log)
}

func TestSendCommand_BeforeConnectFailsFast(t *testing.T) {
	// No plugin is listening; commands must not block waiting for one.
	srv := NewServer()
	defer srv.Bridge().Close()

	_, err := srv.Bridge().SendCommand(context.Background(), "get_document_info", nil)
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestErrorReexports(t *testing.T) {
	// The aliases and the internal definitions must be the same values,
	// so callers can match with errors.Is across package boundaries.
	require.ErrorIs(t, ErrNotConnected, ErrNotConnected)
	assert.NotNil(t, ErrCommandTimeout)
	assert.NotNil(t, ErrConnectionLost)
	assert.NotNil(t, ErrBridgeClosed)

	var _ BridgeError = &PeerError{Command: "move_node", Message: "x"}
	var _ BridgeError = &DialError{Endpoint: "ws://localhost:3055/"}
}
