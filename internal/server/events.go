package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Inbound event names.
const (
	EventJoinRoom    = "join_room"
	EventLeaveRoom   = "leave_room"
	EventSendMessage = "send_message"
	EventTyping      = "typing"
	EventJoinMatch   = "join_match"
	EventLeaveMatch  = "leave_match"
)

// Outbound event names. EventTyping is reused for the match typing indicator.
const (
	EventReceiveMessage = "receive_message"
	EventUserJoined     = "user_joined"
	EventUserLeft       = "user_left"
	EventUserTyping     = "user_typing"
	EventNewMessage     = "new_message"
)

// receive_message type discriminators.
const (
	MessageTypeSystem = "system"
	MessageTypeAI     = "ai_message"
	MessageTypeUser   = "message"
)

const (
	systemSender    = "MoodSync"
	companionSender = "MoodSync AI"
)

// Envelope is the frame exchanged over the socket in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// FlexibleID accepts a JSON string or number. Clients send user ids as either.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = FlexibleID(n.String())
	return nil
}

// JoinRoomPayload is the join_room body.
type JoinRoomPayload struct {
	RoomID   string     `json:"roomId"`
	UserID   FlexibleID `json:"userId"`
	Username string     `json:"username"`
	Mood     string     `json:"mood"`
}

// SendMessagePayload is the send_message body. Room chat fills RoomID and the
// fields after it; match chat fills MatchID, SenderID and Content.
type SendMessagePayload struct {
	RoomID   string     `json:"roomId,omitempty"`
	UserID   FlexibleID `json:"userId,omitempty"`
	Username string     `json:"username,omitempty"`
	Text     string     `json:"text,omitempty"`
	Mood     string     `json:"mood,omitempty"`

	MatchID  string     `json:"matchId,omitempty"`
	SenderID FlexibleID `json:"senderId,omitempty"`
	Content  string     `json:"content,omitempty"`
}

// TypingPayload is the typing body for either surface.
type TypingPayload struct {
	RoomID   string     `json:"roomId,omitempty"`
	MatchID  string     `json:"matchId,omitempty"`
	UserID   FlexibleID `json:"userId,omitempty"`
	Username string     `json:"username,omitempty"`
	IsTyping bool       `json:"isTyping"`
}

// JoinMatchPayload is the join_match body.
type JoinMatchPayload struct {
	MatchID string `json:"matchId"`
}

// ChatMessage is a receive_message frame.
type ChatMessage struct {
	Type      string     `json:"type"`
	MessageID string     `json:"messageId,omitempty"`
	RoomID    string     `json:"roomId"`
	UserID    FlexibleID `json:"userId,omitempty"`
	Username  string     `json:"username,omitempty"`
	Text      string     `json:"text"`
	Mood      string     `json:"mood,omitempty"`
	Sender    string     `json:"sender,omitempty"`
	IsSystem  bool       `json:"isSystem,omitempty"`
	IsAI      bool       `json:"isAI,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// Presence is the user_joined / user_left frame.
type Presence struct {
	UserID    FlexibleID `json:"userId"`
	Username  string     `json:"username"`
	Mood      string     `json:"mood,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// UserTyping is the user_typing frame.
type UserTyping struct {
	UserID    FlexibleID `json:"userId"`
	Username  string     `json:"username"`
	IsTyping  bool       `json:"isTyping"`
	Timestamp time.Time  `json:"timestamp"`
}

// MatchMessage is the body of a new_message frame.
type MatchMessage struct {
	ID       string     `json:"id"`
	MatchID  string     `json:"match_id"`
	SenderID FlexibleID `json:"sender_id"`
	Content  string     `json:"content"`
	SentAt   time.Time  `json:"sent_at"`
	IsRead   bool       `json:"is_read"`
}

// MatchEvent wraps match frames the way match clients expect them.
type MatchEvent struct {
	Type     string        `json:"type"`
	Data     *MatchMessage `json:"data,omitempty"`
	IsTyping *bool         `json:"isTyping,omitempty"`
}

func encodeEnvelope(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

// isExpectedCloseError checks if an error is expected during connection closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}
