package server

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(c *Client) []frame {
	var out []frame
	for {
		select {
		case raw := <-c.send:
			var f frame
			if err := json.Unmarshal(raw, &f); err == nil {
				out = append(out, f)
			}
		default:
			return out
		}
	}
}

func TestEmitExcludesSender(t *testing.T) {
	dir := NewDirectory("room", nil)
	rt := NewRouter(dir, zerolog.Nop())
	a, b, c := newMember(), newMember(), newMember()
	dir.Join("r", a, "")
	dir.Join("r", b, "")
	dir.Join("r", c, "")

	n := rt.Emit("r", EventUserTyping, UserTyping{Username: "a", IsTyping: true}, a.ID())
	assert.Equal(t, 2, n)

	assert.Empty(t, drain(a))
	for _, member := range []*Client{b, c} {
		frames := drain(member)
		require.Len(t, frames, 1, "each member receives the event exactly once")
		assert.Equal(t, EventUserTyping, frames[0].Event)
	}
}

func TestEmitToEveryone(t *testing.T) {
	dir := NewDirectory("room", nil)
	rt := NewRouter(dir, zerolog.Nop())
	a, b := newMember(), newMember()
	dir.Join("r", a, "")
	dir.Join("r", b, "")

	assert.Equal(t, 2, rt.Emit("r", EventReceiveMessage, ChatMessage{Text: "hi"}, ""))
	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(b), 1)
}

func TestEmitSkipsClosedMember(t *testing.T) {
	dir := NewDirectory("room", nil)
	rt := NewRouter(dir, zerolog.Nop())
	a, b := newMember(), newMember()
	dir.Join("r", a, "")
	dir.Join("r", b, "")
	a.markClosed()

	assert.Equal(t, 1, rt.Emit("r", EventReceiveMessage, ChatMessage{Text: "hi"}, ""))
	assert.Len(t, drain(b), 1)
}

func TestEmitSkipsFullBuffer(t *testing.T) {
	dir := NewDirectory("room", nil)
	rt := NewRouter(dir, zerolog.Nop())
	slow, fast := newMember(), newMember()
	dir.Join("r", slow, "")
	dir.Join("r", fast, "")
	for i := 0; i < sendBuffer; i++ {
		require.True(t, slow.enqueue([]byte(`{}`)))
	}

	assert.Equal(t, 1, rt.Emit("r", EventReceiveMessage, ChatMessage{Text: "hi"}, ""))
	assert.Len(t, drain(fast), 1)
}

func TestEmitToMissingRoom(t *testing.T) {
	rt := NewRouter(NewDirectory("room", nil), zerolog.Nop())
	assert.Zero(t, rt.Emit("nowhere", EventReceiveMessage, ChatMessage{}, ""))
}

func TestEmitPreservesOrder(t *testing.T) {
	dir := NewDirectory("room", nil)
	rt := NewRouter(dir, zerolog.Nop())
	a := newMember()
	dir.Join("r", a, "")

	for _, text := range []string{"one", "two", "three"} {
		rt.Emit("r", EventReceiveMessage, ChatMessage{Text: text}, "")
	}

	var got []string
	for _, f := range drain(a) {
		var msg ChatMessage
		require.NoError(t, json.Unmarshal(f.Data, &msg))
		got = append(got, msg.Text)
	}
	assert.Equal(t, []string{"one", "two", "three"}, got)
}
