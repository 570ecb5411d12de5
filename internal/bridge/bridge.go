package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wagiedev/figbridge/internal/bridgerr"
	"github.com/wagiedev/figbridge/internal/conn"
	"github.com/wagiedev/figbridge/internal/correlate"
)

// Bridge forwards named commands to the plugin and returns their results.
//
// It owns the wiring between the connection manager and the correlator:
// incoming messages route to the correlator, and a connection loss fails
// every pending command with ErrConnectionLost.
type Bridge struct {
	log      *slog.Logger
	manager  *conn.Manager
	corr     *correlate.Correlator
	standard time.Duration
	extended time.Duration
}

// New creates a bridge over manager. standard and extended are the two
// command timeout tiers; extended applies to commands known to involve
// longer plugin-side work (export, bulk operations).
func New(
	log *slog.Logger,
	manager *conn.Manager,
	standard, extended time.Duration,
) *Bridge {
	b := &Bridge{
		log:      log.With("component", "bridge"),
		manager:  manager,
		standard: standard,
		extended: extended,
	}

	b.corr = correlate.New(log, manager)

	manager.OnMessage(b.corr.HandleReply)
	manager.OnDisconnect(func(err error) {
		b.corr.FailAll(fmt.Errorf("%w: %v", bridgerr.ErrConnectionLost, err))
	})

	return b
}

// Connect establishes the plugin connection. A failed first attempt
// starts the reconnect loop; the error is still returned so the caller
// can log it.
func (b *Bridge) Connect(ctx context.Context) error {
	err := b.manager.Connect(ctx)
	if err != nil {
		b.manager.StartReconnect()
	}

	return err
}

// Connected reports whether a live plugin connection exists.
func (b *Bridge) Connected() bool {
	return b.manager.State() == conn.StateConnected
}

// SendCommand forwards one command with the standard timeout tier.
func (b *Bridge) SendCommand(
	ctx context.Context,
	name string,
	params map[string]any,
) (map[string]any, error) {
	return b.send(ctx, name, params, b.standard)
}

// SendLongCommand forwards one command with the extended timeout tier.
func (b *Bridge) SendLongCommand(
	ctx context.Context,
	name string,
	params map[string]any,
) (map[string]any, error) {
	return b.send(ctx, name, params, b.extended)
}

func (b *Bridge) send(
	ctx context.Context,
	name string,
	params map[string]any,
	timeout time.Duration,
) (map[string]any, error) {
	if !b.Connected() {
		b.log.Warn("Command rejected, not connected", "command", name)

		return nil, bridgerr.ErrNotConnected
	}

	return b.corr.Issue(ctx, name, params, timeout)
}

// Close shuts the bridge down, failing any still-pending commands.
func (b *Bridge) Close() error {
	err := b.manager.Close()

	b.corr.FailAll(bridgerr.ErrBridgeClosed)

	return err
}
