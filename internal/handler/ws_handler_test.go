package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"checkinhub/internal/app/activity"
)

type wsEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func dialWS(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))

	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, payload any) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	frame, err := json.Marshal(wsEnvelope{Event: event, Payload: raw})
	require.NoError(t, err)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))
}

// readUntil reads frames until one matching the wanted event arrives;
// unrelated broadcasts (periodic stats, membership deltas) are skipped.
func readUntil(t *testing.T, conn *websocket.Conn, event string) wsEnvelope {
	t.Helper()

	for {
		_, frame, err := conn.ReadMessage()
		require.NoError(t, err, "timed out waiting for %q", event)

		var env wsEnvelope
		require.NoError(t, json.Unmarshal(frame, &env))
		if env.Event == event {
			return env
		}
	}
}

func TestWebSocketCheckinFlow(t *testing.T) {
	deps := testDeps(t)
	deps.Coordinator.Start()
	t.Cleanup(deps.Coordinator.Shutdown)

	server := httptest.NewServer(Router(deps))
	t.Cleanup(server.Close)

	handset := dialWS(t, server.URL)
	display := dialWS(t, server.URL)

	sendEvent(t, handset, "join-room", "handset")
	readUntil(t, handset, "stats-update")

	sendEvent(t, display, "join-room", "display")
	readUntil(t, display, "stats-update")

	sendEvent(t, handset, "user-checkin", map[string]any{
		"userId":   "u1",
		"userName": "Ann",
	})

	ack := readUntil(t, handset, "checkin-success")

	var success struct {
		activity.CheckinRecord
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(ack.Payload, &success))
	require.Equal(t, "u1", success.UserID)
	require.InDelta(t, 1.88, success.RedpackAmount, 1e-9)
	require.NotEmpty(t, success.Message)

	// The display room receives the animation trigger.
	trigger := readUntil(t, display, "user-checkin")

	var animation struct {
		UserID        string  `json:"userId"`
		UserName      string  `json:"userName"`
		RedpackAmount float64 `json:"redpackAmount"`
	}
	require.NoError(t, json.Unmarshal(trigger.Payload, &animation))
	require.Equal(t, "Ann", animation.UserName)

	// The HTTP projection reflects the same state.
	require.Eventually(t, func() bool {
		return deps.Coordinator.Stats().TotalUsers == 1
	}, time.Second, 10*time.Millisecond)
}

func TestWebSocketRequestStats(t *testing.T) {
	deps := testDeps(t)
	deps.Coordinator.Start()
	t.Cleanup(deps.Coordinator.Shutdown)

	server := httptest.NewServer(Router(deps))
	t.Cleanup(server.Close)

	conn := dialWS(t, server.URL)

	sendEvent(t, conn, "request-stats", nil)

	env := readUntil(t, conn, "stats-update")

	var stats activity.ActivityStats
	require.NoError(t, json.Unmarshal(env.Payload, &stats))
	require.Zero(t, stats.TotalUsers)
}
