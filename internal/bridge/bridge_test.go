package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/figbridge/internal/bridgerr"
	"github.com/wagiedev/figbridge/internal/conn"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// replyFunc decides how the fake plugin answers each command.
// Returning nil suppresses the reply entirely.
type replyFunc func(cmd map[string]any) map[string]any

// startPlugin runs a fake plugin that answers commands via reply.
func startPlugin(t *testing.T, reply replyFunc) string {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		var writeMu sync.Mutex

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}

			var cmd map[string]any
			if json.Unmarshal(data, &cmd) != nil {
				continue
			}

			if out := reply(cmd); out != nil {
				encoded, _ := json.Marshal(out)

				writeMu.Lock()
				_ = ws.WriteMessage(websocket.TextMessage, encoded)
				writeMu.Unlock()
			}
		}
	}))

	t.Cleanup(ts.Close)

	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func newTestBridge(endpoint string, standard, extended time.Duration) (*Bridge, *conn.Manager) {
	manager := conn.NewManager(slog.Default(), conn.Config{
		Endpoint:       endpoint,
		ReconnectDelay: 20 * time.Millisecond,
	})

	return New(slog.Default(), manager, standard, extended), manager
}

func TestSendCommand_WhileDisconnectedFailsFast(t *testing.T) {
	b, _ := newTestBridge("ws://127.0.0.1:1/", time.Second, time.Second)
	defer b.Close()

	_, err := b.SendCommand(context.Background(), "delete_multiple_nodes",
		map[string]any{"nodeIds": []string{"1", "2"}})

	require.ErrorIs(t, err, bridgerr.ErrNotConnected)
}

func TestSendCommand_RoundTrip(t *testing.T) {
	endpoint := startPlugin(t, func(cmd map[string]any) map[string]any {
		return map[string]any{
			"id":     cmd["id"],
			"result": map[string]any{"name": "Rect"},
		}
	})

	b, _ := newTestBridge(endpoint, time.Second, time.Second)
	defer b.Close()

	require.NoError(t, b.Connect(context.Background()))

	result, err := b.SendCommand(context.Background(), "move_node",
		map[string]any{"nodeId": "1", "x": 10, "y": 20})

	require.NoError(t, err)
	assert.Equal(t, "Rect", result["name"])
}

func TestSendCommand_PeerErrorSurfaces(t *testing.T) {
	endpoint := startPlugin(t, func(cmd map[string]any) map[string]any {
		return map[string]any{"id": cmd["id"], "error": "node not found"}
	})

	b, _ := newTestBridge(endpoint, time.Second, time.Second)
	defer b.Close()

	require.NoError(t, b.Connect(context.Background()))

	_, err := b.SendCommand(context.Background(), "delete_node",
		map[string]any{"nodeId": "404"})

	var peerErr *bridgerr.PeerError

	require.ErrorAs(t, err, &peerErr)
	assert.Equal(t, "delete_node", peerErr.Command)
}

func TestSendCommand_SilentPluginTimesOut(t *testing.T) {
	endpoint := startPlugin(t, func(map[string]any) map[string]any {
		return nil // never reply
	})

	b, _ := newTestBridge(endpoint, 50*time.Millisecond, time.Second)
	defer b.Close()

	require.NoError(t, b.Connect(context.Background()))

	start := time.Now()
	_, err := b.SendCommand(context.Background(), "clone_node",
		map[string]any{"nodeId": "1"})

	require.ErrorIs(t, err, bridgerr.ErrCommandTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSendLongCommand_UsesExtendedTier(t *testing.T) {
	var mu sync.Mutex

	delayed := false

	endpoint := startPlugin(t, func(cmd map[string]any) map[string]any {
		mu.Lock()
		delayed = true
		mu.Unlock()

		// Longer than the standard tier, shorter than the extended one.
		time.Sleep(80 * time.Millisecond)

		return map[string]any{"id": cmd["id"], "result": map[string]any{"exported": true}}
	})

	b, _ := newTestBridge(endpoint, 30*time.Millisecond, time.Second)
	defer b.Close()

	require.NoError(t, b.Connect(context.Background()))

	result, err := b.SendLongCommand(context.Background(), "export_node_as_image",
		map[string]any{"nodeId": "1"})

	require.NoError(t, err)
	assert.Equal(t, true, result["exported"])

	mu.Lock()
	assert.True(t, delayed)
	mu.Unlock()
}

func TestConnectionLossFailsAllPendingCommands(t *testing.T) {
	type hello struct {
		ws *websocket.Conn
	}

	accepted := make(chan hello, 1)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		accepted <- hello{ws: ws}

		// Swallow commands without replying.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(ts.Close)

	endpoint := "ws" + strings.TrimPrefix(ts.URL, "http")

	b, _ := newTestBridge(endpoint, 5*time.Second, 5*time.Second)
	defer b.Close()

	require.NoError(t, b.Connect(context.Background()))

	const k = 4

	errs := make([]error, k)

	var wg sync.WaitGroup

	for i := range k {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, errs[i] = b.SendCommand(context.Background(), "get_document_info", nil)
		}()
	}

	// Let the commands get in flight, then kill the connection.
	time.Sleep(50 * time.Millisecond)

	h := <-accepted
	h.ws.Close()

	wg.Wait()

	for i := range k {
		require.ErrorIs(t, errs[i], bridgerr.ErrConnectionLost)
	}
}

func TestCommandsSucceedAfterReconnect(t *testing.T) {
	var mu sync.Mutex

	connects := 0

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		mu.Lock()
		connects++
		first := connects == 1
		mu.Unlock()

		// The first connection dies immediately; later ones behave.
		if first {
			ws.Close()

			return
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}

			var cmd map[string]any
			if json.Unmarshal(data, &cmd) != nil {
				continue
			}

			encoded, _ := json.Marshal(map[string]any{
				"id":     cmd["id"],
				"result": map[string]any{"ok": true},
			})
			_ = ws.WriteMessage(websocket.TextMessage, encoded)
		}
	}))
	t.Cleanup(ts.Close)

	endpoint := "ws" + strings.TrimPrefix(ts.URL, "http")

	b, _ := newTestBridge(endpoint, time.Second, time.Second)
	defer b.Close()

	// First connect may land on the dying connection; the reconnect loop
	// must recover either way.
	_ = b.Connect(context.Background())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return connects >= 2 && b.Connected()
	}, 3*time.Second, 10*time.Millisecond)

	result, err := b.SendCommand(context.Background(), "move_node",
		map[string]any{"nodeId": "1"})
	require.NoError(t, err)
	assert.Equal(t, true, result["ok"])
}
