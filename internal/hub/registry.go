package hub

import "sync"

// Sender is the hub's view of a live transport connection.
type Sender interface {
	ID() string
	Send(data []byte) error
}

type membership struct {
	conn  Sender
	rooms map[string]struct{}
}

// Registry tracks live connections and their room memberships. A
// connection accumulates memberships as it joins rooms; nothing but
// disconnect removes them.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*membership
	byRoom map[string]map[string]Sender
}

func NewRegistry() *Registry {
	return &Registry{
		conns:  map[string]*membership{},
		byRoom: map[string]map[string]Sender{},
	}
}

// Register adds a connection with no room memberships yet.
func (g *Registry) Register(conn Sender) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.conns[conn.ID()]; ok {
		return
	}
	g.conns[conn.ID()] = &membership{conn: conn, rooms: map[string]struct{}{}}
}

// Unregister drops a connection and all its memberships. No-op for
// ids that were never registered or are already gone.
func (g *Registry) Unregister(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.conns[connID]
	if !ok {
		return
	}
	for roomID := range m.rooms {
		delete(g.byRoom[roomID], connID)
	}
	delete(g.conns, connID)
}

// Join records that a connection is a member of a room. Unknown
// connection ids are ignored.
func (g *Registry) Join(connID, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.conns[connID]
	if !ok {
		return
	}
	m.rooms[roomID] = struct{}{}
	set := g.byRoom[roomID]
	if set == nil {
		set = map[string]Sender{}
		g.byRoom[roomID] = set
	}
	set[connID] = m.conn
}

// Rooms returns every room the connection has joined.
func (g *Registry) Rooms(connID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, ok := g.conns[connID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(m.rooms))
	for roomID := range m.rooms {
		out = append(out, roomID)
	}
	return out
}

// Conn looks up the transport handle for a connection id.
func (g *Registry) Conn(connID string) Sender {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, ok := g.conns[connID]
	if !ok {
		return nil
	}
	return m.conn
}

// InRoom returns a snapshot of the connections currently in a room.
func (g *Registry) InRoom(roomID string) []Sender {
	g.mu.RLock()
	defer g.mu.RUnlock()
	set := g.byRoom[roomID]
	out := make([]Sender, 0, len(set))
	for _, conn := range set {
		out = append(out, conn)
	}
	return out
}

// All returns a snapshot of every live connection.
func (g *Registry) All() []Sender {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Sender, 0, len(g.conns))
	for _, m := range g.conns {
		out = append(out, m.conn)
	}
	return out
}
