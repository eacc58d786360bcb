package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const frameTimeout = 2 * time.Second

func testConfig() Config {
	cfg := defaultConfig()
	cfg.Companion = CompanionConfig{
		MinDelay:     20 * time.Millisecond,
		MaxDelay:     40 * time.Millisecond,
		WelcomeDelay: 10 * time.Millisecond,
	}
	cfg.RateLimit = RateLimitConfig{Burst: 100, RefillInterval: time.Second}
	return cfg
}

// startHub runs a hub for the duration of the test.
func startHub(t *testing.T, customize func(cfg *Config)) *Hub {
	t.Helper()
	cfg := testConfig()
	if customize != nil {
		customize(&cfg)
	}
	h := NewHub(cfg, zerolog.Nop())
	go h.Run()
	t.Cleanup(func() {
		_ = h.Shutdown(time.Second)
	})
	return h
}

// connect registers a connection-less client whose frames are read straight
// from its send buffer.
func connect(t *testing.T, h *Hub) *Client {
	t.Helper()
	c := NewClient(nil, h, "test")
	h.Register(c)
	require.Eventually(t, func() bool {
		_, ok := h.Lookup(c.ID())
		return ok
	}, frameTimeout, 5*time.Millisecond)
	return c
}

func emit(t *testing.T, h *Hub, c *Client, event string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.True(t, h.submit(inboundEvent{client: c, name: event, data: data}))
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func (f frame) chat(t *testing.T) ChatMessage {
	t.Helper()
	var msg ChatMessage
	require.NoError(t, json.Unmarshal(f.Data, &msg))
	return msg
}

func decodeFrame(t *testing.T, raw []byte) frame {
	t.Helper()
	var f frame
	require.NoError(t, json.Unmarshal(raw, &f))
	return f
}

// nextFrame returns the first queued frame for c that matches event and
// accept, skipping everything else.
func nextFrame(t *testing.T, c *Client, event string, accept func(frame) bool) frame {
	t.Helper()
	deadline := time.After(frameTimeout)
	for {
		select {
		case raw, ok := <-c.GetSendChan():
			require.True(t, ok, "send channel closed while waiting for %s", event)
			f := decodeFrame(t, raw)
			if f.Event == event && (accept == nil || accept(f)) {
				return f
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", event)
			return frame{}
		}
	}
}

// noFrame asserts that nothing matching event reaches c within wait.
func noFrame(t *testing.T, c *Client, event string, wait time.Duration) {
	t.Helper()
	deadline := time.After(wait)
	for {
		select {
		case raw, ok := <-c.GetSendChan():
			if !ok {
				return
			}
			f := decodeFrame(t, raw)
			require.NotEqual(t, event, f.Event, "unexpected %s frame: %s", event, f.Data)
		case <-deadline:
			return
		}
	}
}

func isType(kind string) func(frame) bool {
	return func(f frame) bool {
		var msg ChatMessage
		return json.Unmarshal(f.Data, &msg) == nil && msg.Type == kind
	}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
