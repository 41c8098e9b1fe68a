package hub

import (
	"encoding/json"
	"time"
)

// Client -> server event names.
const (
	EventJoinRoom    = "join-room"
	EventCursorMove  = "cursor-move"
	EventSendMessage = "send-message"
)

// Server -> client event names.
const (
	EventCursorUpdate = "cursor-update"
	EventChatHistory  = "chat-history"
	EventUserJoined   = "user-joined"
	EventUserLeft     = "user-left"
	EventNewMessage   = "new-message"
	EventRoomCreated  = "room-created"
)

// Envelope is the wire frame for every event in both directions:
// a name plus an event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type joinRoomReq struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	Color    string `json:"color"`
}

type cursorMoveReq struct {
	RoomID string  `json:"roomId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type sendMessageReq struct {
	RoomID   string `json:"roomId"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

// Cursor is a participant's live position and identity within a room.
type Cursor struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Message is an immutable chat entry in a room's bounded history.
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// CursorUpdate carries the full cursor mapping for a room. Consumers
// treat each one as an authoritative replacement, never a delta.
type CursorUpdate struct {
	Cursors map[string]Cursor `json:"cursors"`
}

// ChatHistory replays a room's retained messages to a new joiner.
type ChatHistory struct {
	Messages []Message `json:"messages"`
}

// UserNotice announces a join or leave to the rest of a room.
type UserNotice struct {
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
}

// RoomAnnouncement propagates a room-created notification from the
// metadata service to every connected client.
type RoomAnnouncement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorName string    `json:"creatorName"`
	Private     bool      `json:"isPrivate"`
	Color       string    `json:"color"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}
