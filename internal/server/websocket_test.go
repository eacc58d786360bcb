package server

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tyrowin/moodsync/internal/mood"
)

func wsURL(api *testAPI) string {
	return "ws" + strings.TrimPrefix(api.srv.URL, "http") + "/ws"
}

func dial(t *testing.T, api *testAPI, origin string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(api), header)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Envelope{Event: event, Data: raw}))
}

// readUntil reads frames until one matches event and accept.
func readUntil(t *testing.T, conn *websocket.Conn, event string, accept func(frame) bool) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(frameTimeout)))
	for {
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for %s", event)
		f := decodeFrame(t, raw)
		if f.Event == event && (accept == nil || accept(f)) {
			return f
		}
	}
}

func expectSilence(t *testing.T, conn *websocket.Conn, event string, wait time.Duration) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(wait)))
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			var netErr net.Error
			if assert.ErrorAs(t, err, &netErr) {
				assert.True(t, netErr.Timeout())
			}
			return
		}
		f := decodeFrame(t, raw)
		require.NotEqual(t, event, f.Event, "unexpected %s frame: %s", event, f.Data)
	}
}

func TestWebSocketRoomChat(t *testing.T) {
	api := newTestAPI(t, nil, nil)
	ana := dial(t, api, "")
	ben := dial(t, api, "http://localhost:5173")

	send(t, ana, EventJoinRoom, map[string]any{"roomId": "lobby", "userId": 1, "username": "ana", "mood": "tired"})
	welcome := readUntil(t, ana, EventReceiveMessage, isType(MessageTypeSystem)).chat(t)
	assert.Equal(t, "Welcome to MoodSync! You're feeling tired today.", welcome.Text)

	send(t, ben, EventJoinRoom, map[string]any{"roomId": "lobby", "userId": 2, "username": "ben", "mood": "happy"})
	joined := readUntil(t, ana, EventUserJoined, nil)
	assert.Contains(t, string(joined.Data), `"username":"ben"`)

	send(t, ben, EventSendMessage, map[string]any{"roomId": "lobby", "userId": 2, "username": "ben", "text": "what a wonderful day", "mood": "happy"})
	relayed := readUntil(t, ana, EventReceiveMessage, isType(MessageTypeUser)).chat(t)
	assert.Equal(t, "what a wonderful day", relayed.Text)

	isReply := func(f frame) bool {
		var msg ChatMessage
		return json.Unmarshal(f.Data, &msg) == nil && msg.IsAI && msg.RoomID == "lobby" &&
			slices.Contains(mood.Replies(mood.Happy), msg.Text)
	}
	readUntil(t, ana, EventReceiveMessage, isReply)
	readUntil(t, ben, EventReceiveMessage, isReply)

	require.Eventually(t, func() bool {
		return api.hub.ConnectionCount() == 2 && api.hub.RoomCount() == 1
	}, frameTimeout, 10*time.Millisecond)

	require.NoError(t, ben.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	left := readUntil(t, ana, EventUserLeft, nil)
	assert.Contains(t, string(left.Data), `"username":"ben"`)

	require.Eventually(t, func() bool { return api.hub.ConnectionCount() == 1 }, frameTimeout, 10*time.Millisecond)
}

func TestWebSocketSenderDoesNotReceiveOwnMessage(t *testing.T) {
	api := newTestAPI(t, nil, func(cfg *Config) {
		cfg.Companion.MinDelay = time.Minute
		cfg.Companion.MaxDelay = time.Minute
	})
	ana := dial(t, api, "")

	send(t, ana, EventJoinRoom, map[string]any{"roomId": "solo", "userId": 1, "username": "ana", "mood": "calm"})
	readUntil(t, ana, EventReceiveMessage, isType(MessageTypeAI))

	send(t, ana, EventSendMessage, map[string]any{"roomId": "solo", "text": "echo?"})
	expectSilence(t, ana, EventReceiveMessage, 150*time.Millisecond)
}

func TestWebSocketRejectsDisallowedOrigin(t *testing.T) {
	api := newTestAPI(t, nil, func(cfg *Config) {
		cfg.AllowedOrigins = []string{"https://app.example.com"}
	})

	header := http.Header{}
	header.Set("Origin", "https://evil.example.com")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(api), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "https://app.example.com")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(api), header)
	require.NoError(t, err)
	_ = resp.Body.Close()
	_ = conn.Close()
}

func TestWebSocketRateLimitDropsExcessEvents(t *testing.T) {
	api := newTestAPI(t, nil, func(cfg *Config) {
		cfg.RateLimit = RateLimitConfig{Burst: 2, RefillInterval: time.Hour}
		cfg.Companion.WelcomeDelay = time.Minute
		cfg.Companion.MinDelay = time.Minute
		cfg.Companion.MaxDelay = time.Minute
	})
	ana := dial(t, api, "")
	ben := dial(t, api, "")

	send(t, ana, EventJoinRoom, map[string]any{"roomId": "r", "username": "ana", "mood": "calm"})
	readUntil(t, ana, EventReceiveMessage, isType(MessageTypeSystem))
	send(t, ben, EventJoinRoom, map[string]any{"roomId": "r", "username": "ben", "mood": "calm"})
	readUntil(t, ben, EventReceiveMessage, isType(MessageTypeSystem))

	send(t, ben, EventSendMessage, map[string]any{"roomId": "r", "text": "first"})
	send(t, ben, EventSendMessage, map[string]any{"roomId": "r", "text": "second"})

	assert.Equal(t, "first", readUntil(t, ana, EventReceiveMessage, isType(MessageTypeUser)).chat(t).Text)
	expectSilence(t, ana, EventReceiveMessage, 150*time.Millisecond)
}

func TestWebSocketMalformedFrameKeepsConnection(t *testing.T) {
	api := newTestAPI(t, nil, nil)
	ana := dial(t, api, "")

	require.NoError(t, ana.WriteMessage(websocket.TextMessage, []byte("not json")))
	send(t, ana, EventJoinRoom, map[string]any{"roomId": "r", "username": "ana", "mood": "calm"})
	readUntil(t, ana, EventReceiveMessage, isType(MessageTypeSystem))
}

func TestWebSocketClosedAfterHubShutdown(t *testing.T) {
	api := newTestAPI(t, nil, nil)
	require.NoError(t, api.hub.Shutdown(time.Second))

	conn := dial(t, api, "")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(frameTimeout)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)

	var netErr net.Error
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "server should close the connection instead of leaving it open")
	}
	assert.Zero(t, api.hub.ConnectionCount())
}

func TestTestPageServed(t *testing.T) {
	api := newTestAPI(t, nil, nil)

	resp, err := http.Get(api.srv.URL + "/test")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}
