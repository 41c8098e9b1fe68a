package hub

import "time"

// Presence runs the join / cursor-move / disconnect lifecycle for
// connections within rooms.
type Presence struct {
	store *Store
	reg   *Registry
	out   *Dispatcher
}

func NewPresence(store *Store, reg *Registry, out *Dispatcher) *Presence {
	return &Presence{store: store, reg: reg, out: out}
}

// Join places a connection's cursor in a room at (0,0), creating the
// room on first reference. The whole room gets the new cursor
// snapshot, the joiner alone gets the chat history, and everyone else
// gets a join notice. Identity is taken from the caller verbatim.
func (p *Presence) Join(conn Sender, roomID, username, color string) {
	room := p.store.GetOrCreate(roomID)
	p.reg.Join(conn.ID(), roomID)
	room.SetCursor(Cursor{
		ID:       conn.ID(),
		Username: username,
		Color:    color,
	}, func(cursors map[string]Cursor) {
		p.out.ToRoom(roomID, EventCursorUpdate, CursorUpdate{Cursors: cursors})
	})

	p.out.ToConn(conn.ID(), EventChatHistory, ChatHistory{Messages: room.History()})
	p.out.ToRoomExcept(roomID, conn.ID(), EventUserJoined, UserNotice{
		Username:  username,
		Timestamp: time.Now(),
		ID:        conn.ID(),
	})
}

// CursorMove updates a cursor's position and rebroadcasts the room's
// full mapping. Silently ignored when the room was never created or
// the connection holds no cursor there. The broadcast happens under
// the room lock, so concurrent moves fan out in mutation order.
func (p *Presence) CursorMove(connID, roomID string, x, y float64) {
	room := p.store.Get(roomID)
	if room == nil {
		return
	}
	room.MoveCursor(connID, x, y, func(cursors map[string]Cursor) {
		p.out.ToRoom(roomID, EventCursorUpdate, CursorUpdate{Cursors: cursors})
	})
}

// Disconnect removes the connection's cursor from every room it
// joined, broadcasting the shrunken mapping and then a leave notice
// to each. The registry entry is dropped first so the departing
// connection is excluded from its own farewell.
func (p *Presence) Disconnect(connID string) {
	rooms := p.reg.Rooms(connID)
	p.reg.Unregister(connID)

	for _, roomID := range rooms {
		room := p.store.Get(roomID)
		if room == nil {
			continue
		}
		room.RemoveCursor(connID, func(cursors map[string]Cursor, username string) {
			p.out.ToRoom(roomID, EventCursorUpdate, CursorUpdate{Cursors: cursors})
			p.out.ToRoom(roomID, EventUserLeft, UserNotice{
				Username:  username,
				Timestamp: time.Now(),
				ID:        connID,
			})
		})
	}
}
