package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Tyrowin/moodsync/internal/metrics"
	"github.com/Tyrowin/moodsync/internal/mood"
)

var (
	errMissingRoom   = errors.New("roomId is required")
	errMissingMatch  = errors.New("matchId is required")
	errMissingTarget = errors.New("roomId or matchId is required")
)

func (h *Hub) eventHandlers() map[string]eventHandler {
	return map[string]eventHandler{
		EventJoinRoom:    h.handleJoinRoom,
		EventLeaveRoom:   h.handleLeaveRoom,
		EventSendMessage: h.handleSendMessage,
		EventTyping:      h.handleTyping,
		EventJoinMatch:   h.handleJoinMatch,
		EventLeaveMatch:  h.handleLeaveMatch,
	}
}

func decode[T any](data json.RawMessage) (T, error) {
	var v T
	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode payload: %w", err)
	}
	return v, nil
}

func now() time.Time {
	return time.Now().UTC()
}

func (h *Hub) handleJoinRoom(c *Client, data json.RawMessage) error {
	p, err := decode[JoinRoomPayload](data)
	if err != nil {
		return err
	}
	if p.RoomID == "" {
		return errMissingRoom
	}

	if c.roomID != "" && c.roomID != p.RoomID {
		h.leaveRoom(c)
	}

	c.roomID = p.RoomID
	c.userID = p.UserID
	c.username = p.Username
	c.mood = p.Mood

	state := h.rooms.Join(p.RoomID, c, p.Mood)
	metrics.RoomsActive.WithLabelValues("room").Set(float64(h.rooms.Len()))
	h.log.Info().
		Str("conn", c.id).
		Str("room", p.RoomID).
		Str("user", p.Username).
		Int("members", state.Members).
		Msg("user joined room")

	sendTo(c, EventReceiveMessage, ChatMessage{
		Type:      MessageTypeSystem,
		MessageID: "sys_" + uuid.NewString(),
		RoomID:    p.RoomID,
		Text:      fmt.Sprintf("Welcome to MoodSync! You're feeling %s today.", p.Mood),
		Sender:    systemSender,
		IsSystem:  true,
		Timestamp: now(),
	}, h.log)

	roomID, label := p.RoomID, p.Mood
	h.scheduler.Schedule(roomID, h.cfg.Companion.WelcomeDelay, func() {
		// The client may have moved on to another room in the meantime.
		if c.isClosed() || !h.rooms.Contains(roomID, c.id) {
			return
		}
		if sendTo(c, EventReceiveMessage, ChatMessage{
			Type:      MessageTypeAI,
			MessageID: "ai_" + uuid.NewString(),
			RoomID:    roomID,
			Text:      mood.Welcome(mood.Mood(label)),
			Mood:      label,
			Sender:    companionSender,
			IsAI:      true,
			Timestamp: now(),
		}, h.log) {
			metrics.CompanionReplies.WithLabelValues("welcome").Inc()
		}
	})

	h.roomRouter.Emit(p.RoomID, EventUserJoined, Presence{
		UserID:    p.UserID,
		Username:  p.Username,
		Mood:      p.Mood,
		Timestamp: now(),
	}, c.id)
	return nil
}

func (h *Hub) handleLeaveRoom(c *Client, _ json.RawMessage) error {
	h.leaveRoom(c)
	return nil
}

func (h *Hub) handleSendMessage(c *Client, data json.RawMessage) error {
	p, err := decode[SendMessagePayload](data)
	if err != nil {
		return err
	}
	if p.RoomID == "" && p.MatchID == "" {
		return errMissingTarget
	}
	if p.RoomID != "" {
		h.relayRoomMessage(c, p)
	}
	if p.MatchID != "" {
		h.relayMatchMessage(c, p)
	}
	return nil
}

func (h *Hub) relayRoomMessage(c *Client, p SendMessagePayload) {
	if _, ok := h.rooms.Get(p.RoomID); !ok {
		h.log.Debug().Str("conn", c.id).Str("room", p.RoomID).Msg("message for unknown room ignored")
		return
	}
	h.rooms.RecordMessage(p.RoomID)

	h.roomRouter.Emit(p.RoomID, EventReceiveMessage, ChatMessage{
		Type:      MessageTypeUser,
		MessageID: "msg_" + uuid.NewString(),
		RoomID:    p.RoomID,
		UserID:    p.UserID,
		Username:  p.Username,
		Text:      p.Text,
		Mood:      p.Mood,
		Timestamp: now(),
	}, c.id)

	label := p.Mood
	if label == "" {
		label = c.mood
	}
	h.scheduleCompanionReply(p.RoomID, p.Text, label)
}

// scheduleCompanionReply queues a mood-aware reply to the whole room. Pending
// replies are dropped if the room is deleted first.
func (h *Hub) scheduleCompanionReply(roomID, text, label string) {
	delay := replyDelay(h.cfg.Companion.MinDelay, h.cfg.Companion.MaxDelay)
	h.scheduler.Schedule(roomID, delay, func() {
		reply := ChatMessage{
			Type:      MessageTypeAI,
			MessageID: "ai_" + uuid.NewString(),
			RoomID:    roomID,
			Text:      mood.Compose(text, mood.Mood(label)),
			Mood:      string(mood.Resolve(text, mood.Mood(label))),
			Sender:    companionSender,
			IsAI:      true,
			Timestamp: now(),
		}
		if h.roomRouter.Emit(roomID, EventReceiveMessage, reply, "") > 0 {
			metrics.CompanionReplies.WithLabelValues("reply").Inc()
		}
	})
}

func (h *Hub) relayMatchMessage(c *Client, p SendMessagePayload) {
	h.matches.RecordMessage(p.MatchID)
	h.matchRouter.Emit(p.MatchID, EventNewMessage, MatchEvent{
		Type: EventNewMessage,
		Data: &MatchMessage{
			ID:       "msg_" + uuid.NewString(),
			MatchID:  p.MatchID,
			SenderID: p.SenderID,
			Content:  p.Content,
			SentAt:   now(),
			IsRead:   false,
		},
	}, c.id)
}

func (h *Hub) handleTyping(c *Client, data json.RawMessage) error {
	p, err := decode[TypingPayload](data)
	if err != nil {
		return err
	}
	if p.RoomID == "" && p.MatchID == "" {
		return errMissingTarget
	}
	if p.RoomID != "" {
		h.roomRouter.Emit(p.RoomID, EventUserTyping, UserTyping{
			UserID:    p.UserID,
			Username:  p.Username,
			IsTyping:  p.IsTyping,
			Timestamp: now(),
		}, c.id)
	}
	if p.MatchID != "" {
		typing := p.IsTyping
		h.matchRouter.Emit(p.MatchID, EventTyping, MatchEvent{
			Type:     EventTyping,
			IsTyping: &typing,
		}, c.id)
	}
	return nil
}

func (h *Hub) handleJoinMatch(c *Client, data json.RawMessage) error {
	p, err := decode[JoinMatchPayload](data)
	if err != nil {
		return err
	}
	if p.MatchID == "" {
		return errMissingMatch
	}
	if c.matchID != "" && c.matchID != p.MatchID {
		h.leaveMatch(c)
	}
	c.matchID = p.MatchID
	state := h.matches.Join(p.MatchID, c, "")
	metrics.RoomsActive.WithLabelValues("match").Set(float64(h.matches.Len()))
	h.log.Info().Str("conn", c.id).Str("match", p.MatchID).Int("members", state.Members).Msg("client joined match")
	return nil
}

func (h *Hub) handleLeaveMatch(c *Client, _ json.RawMessage) error {
	h.leaveMatch(c)
	return nil
}

// leaveRoom removes c from its current room and tells the remaining members.
func (h *Hub) leaveRoom(c *Client) {
	if c.roomID == "" {
		return
	}
	roomID := c.roomID
	c.roomID = ""

	state, deleted := h.rooms.Leave(roomID, c.id)
	h.log.Info().Str("conn", c.id).Str("room", roomID).Int("members", state.Members).Msg("user left room")
	if deleted || c.username == "" {
		return
	}
	h.roomRouter.Emit(roomID, EventUserLeft, Presence{
		UserID:    c.userID,
		Username:  c.username,
		Timestamp: now(),
	}, c.id)
}

func (h *Hub) leaveMatch(c *Client) {
	if c.matchID == "" {
		return
	}
	matchID := c.matchID
	c.matchID = ""
	h.matches.Leave(matchID, c.id)
}
