package hub

import (
	"time"

	"github.com/google/uuid"
)

// Chat appends messages to room history and fans them out.
type Chat struct {
	store *Store
	out   *Dispatcher
}

func NewChat(store *Store, out *Dispatcher) *Chat {
	return &Chat{store: store, out: out}
}

// SendMessage appends a message to the room's bounded history and
// broadcasts it to the whole room, sender included. A room that was
// never joined silently swallows the message; reports false in that
// case. Content is not validated, callers are trusted.
func (c *Chat) SendMessage(roomID, senderID, username, content string) (Message, bool) {
	room := c.store.Get(roomID)
	if room == nil {
		return Message{}, false
	}

	msg := Message{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Username:  username,
		Content:   content,
		Timestamp: time.Now(),
	}
	room.AppendMessage(msg, func() {
		c.out.ToRoom(roomID, EventNewMessage, msg)
	})
	return msg, true
}
