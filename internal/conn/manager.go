package conn

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wagiedev/figbridge/internal/bridgerr"
)

// State describes the connection lifecycle.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Config configures a Manager.
type Config struct {
	// Endpoint is the WebSocket URL of the plugin (ws:// or wss://).
	Endpoint string

	// ReconnectDelay is the fixed wait between reconnect attempts.
	ReconnectDelay time.Duration

	// Dialer overrides the default websocket dialer. Nil uses
	// websocket.DefaultDialer.
	Dialer *websocket.Dialer
}

// Manager owns the WebSocket connection to the plugin.
//
// Exactly one live connection exists at a time. All writes go through
// Send, which serializes frames with an internal mutex. A read loop per
// connection decodes incoming JSON objects and hands them to the
// OnMessage callback. When the connection drops, the OnDisconnect
// callback fires once and a reconnect loop starts.
type Manager struct {
	log    *slog.Logger
	cfg    Config
	dialer *websocket.Dialer

	mu    sync.Mutex
	state State
	ws    *websocket.Conn

	// writeMu serializes frame writes; gorilla conns allow only one
	// concurrent writer.
	writeMu sync.Mutex

	onMessage    func(map[string]any)
	onDisconnect func(error)

	reconnecting atomic.Bool

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewManager creates a connection manager. Connect must be called before
// Send will succeed.
func NewManager(log *slog.Logger, cfg Config) *Manager {
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	return &Manager{
		log:    log.With("component", "conn"),
		cfg:    cfg,
		dialer: dialer,
		done:   make(chan struct{}),
	}
}

// OnMessage registers the callback invoked for every decoded message.
// Must be called before Connect.
func (m *Manager) OnMessage(fn func(map[string]any)) {
	m.onMessage = fn
}

// OnDisconnect registers the callback invoked once per connection loss,
// before any reconnect attempt. Must be called before Connect.
func (m *Manager) OnDisconnect(fn func(error)) {
	m.onDisconnect = fn
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Endpoint returns the configured plugin endpoint.
func (m *Manager) Endpoint() string {
	return m.cfg.Endpoint
}

// Connect opens the WebSocket connection. It is idempotent: calling while
// already Connected (or while another Connect is in flight) is a no-op.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()

	if m.state != StateDisconnected {
		m.mu.Unlock()
		m.log.Debug("Connect skipped", "state", m.state.String())

		return nil
	}

	select {
	case <-m.done:
		m.mu.Unlock()

		return bridgerr.ErrBridgeClosed
	default:
	}

	m.state = StateConnecting
	m.mu.Unlock()

	m.log.Info("Connecting to plugin", "endpoint", m.cfg.Endpoint)

	ws, resp, err := m.dialer.DialContext(ctx, m.cfg.Endpoint, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	if err != nil {
		m.mu.Lock()
		m.state = StateDisconnected
		m.mu.Unlock()

		return &bridgerr.DialError{Endpoint: m.cfg.Endpoint, Err: err}
	}

	m.mu.Lock()

	select {
	case <-m.done:
		// Closed while dialing; discard the fresh connection.
		m.mu.Unlock()
		ws.Close()

		return bridgerr.ErrBridgeClosed
	default:
	}

	m.ws = ws
	m.state = StateConnected
	m.mu.Unlock()

	m.log.Info("Connected to plugin", "endpoint", m.cfg.Endpoint)

	m.wg.Add(1)

	go m.readLoop(ws)

	return nil
}

// Send transmits one JSON message. It fails immediately with
// ErrNotConnected when no live connection exists.
func (m *Manager) Send(ctx context.Context, data []byte) error {
	m.mu.Lock()
	ws := m.ws
	connected := m.state == StateConnected
	m.mu.Unlock()

	if !connected || ws == nil {
		return bridgerr.ErrNotConnected
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		_ = ws.SetWriteDeadline(deadline)
	} else {
		_ = ws.SetWriteDeadline(time.Time{})
	}

	return ws.WriteMessage(websocket.TextMessage, data)
}

// Close tears the manager down. Safe to call multiple times.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
	})

	m.mu.Lock()
	ws := m.ws
	m.ws = nil
	m.state = StateDisconnected
	m.mu.Unlock()

	if ws != nil {
		ws.Close()
	}

	m.wg.Wait()

	return nil
}

// readLoop reads frames from one connection until it fails, then triggers
// disconnect handling. One loop runs per established connection.
func (m *Manager) readLoop(ws *websocket.Conn) {
	defer m.wg.Done()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			m.handleDisconnect(ws, err)

			return
		}

		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			m.log.Warn("Dropping malformed message from plugin", "error", err)

			continue
		}

		if m.onMessage != nil {
			m.onMessage(msg)
		}
	}
}

// handleDisconnect transitions to Disconnected, fails pending work via the
// OnDisconnect callback, and schedules a reconnect unless closing.
func (m *Manager) handleDisconnect(ws *websocket.Conn, err error) {
	m.mu.Lock()

	if m.ws != ws {
		// A newer connection already replaced this one.
		m.mu.Unlock()

		return
	}

	m.ws = nil
	m.state = StateDisconnected
	m.mu.Unlock()

	ws.Close()

	select {
	case <-m.done:
		m.log.Debug("Connection closed during shutdown")
	default:
		m.log.Warn("Connection to plugin lost", "error", err)
	}

	if m.onDisconnect != nil {
		m.onDisconnect(err)
	}

	m.StartReconnect()
}

// StartReconnect launches the reconnect loop if one is not already
// running. The loop waits the configured delay between attempts and
// retries until it succeeds or the manager is closed.
func (m *Manager) StartReconnect() {
	select {
	case <-m.done:
		return
	default:
	}

	if !m.reconnecting.CompareAndSwap(false, true) {
		return
	}

	m.wg.Add(1)

	go func() {
		defer m.wg.Done()
		defer m.reconnecting.Store(false)

		for {
			select {
			case <-m.done:
				return
			case <-time.After(m.cfg.ReconnectDelay):
			}

			if err := m.Connect(context.Background()); err != nil {
				m.log.Warn("Reconnect attempt failed",
					"endpoint", m.cfg.Endpoint,
					"retry_in", m.cfg.ReconnectDelay,
					"error", err,
				)

				continue
			}

			return
		}
	}()
}
