package hub

import "sync"

// historyCap bounds each room's retained chat transcript. Oldest
// messages are evicted first once the cap is reached.
const historyCap = 100

// RoomState owns one room's cursors and message history. All access
// goes through its methods, which serialize under the room's own
// mutex so independent rooms never block each other.
type RoomState struct {
	mu       sync.Mutex
	cursors  map[string]Cursor
	messages []Message
}

func newRoomState() *RoomState {
	return &RoomState{cursors: map[string]Cursor{}}
}

// SetCursor inserts or replaces a connection's cursor. publish, when
// non-nil, runs with the updated mapping before the room lock is
// released, so broadcast order matches mutation order.
func (r *RoomState) SetCursor(c Cursor, publish func(cursors map[string]Cursor)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursors[c.ID] = c
	if publish != nil {
		publish(r.snapshotLocked())
	}
}

// MoveCursor updates a cursor's position, publishing the updated
// mapping under the room lock. Reports false without touching state
// when the connection has no cursor in this room.
func (r *RoomState) MoveCursor(connID string, x, y float64, publish func(cursors map[string]Cursor)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cursors[connID]
	if !ok {
		return false
	}
	c.X, c.Y = x, y
	r.cursors[connID] = c
	if publish != nil {
		publish(r.snapshotLocked())
	}
	return true
}

// RemoveCursor deletes a connection's cursor, publishing the shrunken
// mapping and the removed cursor's last-known username under the room
// lock.
func (r *RoomState) RemoveCursor(connID string, publish func(cursors map[string]Cursor, username string)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cursors[connID]
	if !ok {
		return false
	}
	delete(r.cursors, connID)
	if publish != nil {
		publish(r.snapshotLocked(), c.Username)
	}
	return true
}

// AppendMessage adds a message to the history, evicting the oldest
// entry once the cap is exceeded. publish runs before the room lock
// is released so messages fan out in append order.
func (r *RoomState) AppendMessage(m Message, publish func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	if len(r.messages) > historyCap {
		r.messages = r.messages[len(r.messages)-historyCap:]
	}
	if publish != nil {
		publish()
	}
}

// History returns a copy of the retained messages in arrival order.
// Never nil, so an empty room replays as an empty list.
func (r *RoomState) History() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *RoomState) snapshotLocked() map[string]Cursor {
	out := make(map[string]Cursor, len(r.cursors))
	for id, c := range r.cursors {
		out[id] = c
	}
	return out
}

// Store maps room ids to their state. Rooms are created lazily on
// first reference and never removed.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*RoomState
}

func NewStore() *Store {
	return &Store{rooms: map[string]*RoomState{}}
}

// GetOrCreate returns the room's state, creating an empty one on
// first reference.
func (s *Store) GetOrCreate(roomID string) *RoomState {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.rooms[roomID]
	if r == nil {
		r = newRoomState()
		s.rooms[roomID] = r
	}
	return r
}

// Get returns the room's state or nil. It never creates.
func (s *Store) Get(roomID string) *RoomState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[roomID]
}
