package correlate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/figbridge/internal/bridgerr"
	"github.com/wagiedev/figbridge/internal/wire"
)

// Sender transmits a serialized command. Satisfied by conn.Manager.
type Sender interface {
	Send(ctx context.Context, data []byte) error
}

// Correlator multiplexes concurrently issued commands onto a single
// connection and resolves each issuer exactly once.
type Correlator struct {
	log    *slog.Logger
	sender Sender

	mu      sync.Mutex
	pending map[string]*pendingCommand
}

// pendingCommand tracks one in-flight command awaiting its reply.
type pendingCommand struct {
	command  string
	reply    chan outcome // buffered, written at most once
	issuedAt time.Time
}

// outcome is the single resolution delivered to an issuer.
type outcome struct {
	result map[string]any
	err    error
}

// New creates a correlator that transmits via sender.
func New(log *slog.Logger, sender Sender) *Correlator {
	return &Correlator{
		log:     log.With("component", "correlate"),
		sender:  sender,
		pending: make(map[string]*pendingCommand, 8),
	}
}

// Issue sends one command and blocks until the matching reply arrives,
// the timeout elapses, the context is cancelled, or the connection is
// lost. The returned map is the plugin's result payload.
func (c *Correlator) Issue(
	ctx context.Context,
	command string,
	params map[string]any,
	timeout time.Duration,
) (map[string]any, error) {
	id := ulid.Make().String()

	pc := &pendingCommand{
		command:  command,
		reply:    make(chan outcome, 1),
		issuedAt: time.Now(),
	}

	c.mu.Lock()
	c.pending[id] = pc
	c.mu.Unlock()

	data, err := json.Marshal(wire.NewCommand(id, command, params))
	if err != nil {
		c.remove(id)

		return nil, fmt.Errorf("marshal command: %w", err)
	}

	c.log.Debug("Sending command", "id", id, "command", command, "timeout", timeout)

	if err := c.sender.Send(ctx, data); err != nil {
		c.remove(id)

		return nil, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-pc.reply:
		return out.result, out.err

	case <-timer.C:
		if !c.remove(id) {
			// A resolver claimed the entry just before the timer fired;
			// its outcome is already buffered.
			out := <-pc.reply

			return out.result, out.err
		}

		c.log.Warn("Command timed out", "id", id, "command", command, "timeout", timeout)

		return nil, fmt.Errorf("%w: no reply to %s after %s", bridgerr.ErrCommandTimeout, command, timeout)

	case <-ctx.Done():
		if !c.remove(id) {
			out := <-pc.reply

			return out.result, out.err
		}

		c.log.Debug("Command cancelled", "id", id, "command", command)

		return nil, ctx.Err()
	}
}

// HandleReply routes one decoded message from the plugin to its pending
// entry. Messages with unknown or already-resolved ids are dropped.
// Registered as the connection manager's OnMessage callback.
func (c *Correlator) HandleReply(raw map[string]any) {
	rep := wire.Reply(raw)

	id := rep.ID()
	if id == "" {
		c.log.Warn("Dropping message without correlation id")

		return
	}

	c.mu.Lock()

	pc, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}

	c.mu.Unlock()

	if !ok {
		c.log.Warn("Dropping reply for unknown or resolved command", "id", id)

		return
	}

	if rep.IsError() {
		c.log.Debug("Plugin returned error", "id", id, "command", pc.command)
		pc.reply <- outcome{err: &bridgerr.PeerError{Command: pc.command, Message: rep.ErrorMessage()}}

		return
	}

	c.log.Debug("Command resolved", "id", id, "command", pc.command,
		"elapsed", time.Since(pc.issuedAt))

	pc.reply <- outcome{result: rep.Result()}
}

// FailAll resolves every pending entry with err and clears the table.
// Registered (wrapped) as the connection manager's OnDisconnect callback.
func (c *Correlator) FailAll(err error) {
	c.mu.Lock()
	failed := c.pending
	c.pending = make(map[string]*pendingCommand, 8)
	c.mu.Unlock()

	if len(failed) == 0 {
		return
	}

	c.log.Warn("Failing all pending commands", "count", len(failed), "error", err)

	for id, pc := range failed {
		c.log.Debug("Failing pending command", "id", id, "command", pc.command)
		pc.reply <- outcome{err: err}
	}
}

// PendingCount reports the number of in-flight commands.
func (c *Correlator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}

// remove deletes a pending entry, reporting whether it was still present.
func (c *Correlator) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}

	return ok
}
