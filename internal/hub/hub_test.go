package hub

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collab-hub/pkg/metrics"
)

type mockSender struct {
	id      string
	mu      sync.Mutex
	frames  [][]byte
	sendErr error
}

func (m *mockSender) ID() string { return m.id }

func (m *mockSender) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.frames = append(m.frames, data)
	return nil
}

// envelopes decodes every frame the sender received, in order.
func (m *mockSender) envelopes(t *testing.T) []Envelope {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Envelope, 0, len(m.frames))
	for _, f := range m.frames {
		var env Envelope
		require.NoError(t, json.Unmarshal(f, &env))
		out = append(out, env)
	}
	return out
}

// byEvent returns the payloads of every received event with the name.
func (m *mockSender) byEvent(t *testing.T, event string) []json.RawMessage {
	t.Helper()
	var out []json.RawMessage
	for _, env := range m.envelopes(t) {
		if env.Event == event {
			out = append(out, env.Data)
		}
	}
	return out
}

// lastCursorUpdate decodes the most recent cursor-update the sender saw.
func (m *mockSender) lastCursorUpdate(t *testing.T) (CursorUpdate, bool) {
	t.Helper()
	payloads := m.byEvent(t, EventCursorUpdate)
	if len(payloads) == 0 {
		return CursorUpdate{}, false
	}
	var cu CursorUpdate
	require.NoError(t, json.Unmarshal(payloads[len(payloads)-1], &cu))
	return cu, true
}

func (m *mockSender) frameCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

type fixture struct {
	reg      *Registry
	store    *Store
	out      *Dispatcher
	presence *Presence
	chat     *Chat
}

func newFixture() *fixture {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := NewRegistry()
	store := NewStore()
	out := NewDispatcher(reg, log)
	return &fixture{
		reg:      reg,
		store:    store,
		out:      out,
		presence: NewPresence(store, reg, out),
		chat:     NewChat(store, out),
	}
}

// join registers a connection and runs the full join path.
func (f *fixture) join(conn *mockSender, roomID, username, color string) {
	f.reg.Register(conn)
	f.presence.Join(conn, roomID, username, color)
}

func newTestHub() *Hub {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func TestHandle_JoinRoom(t *testing.T) {
	h := newTestHub()
	conn := &mockSender{id: "c1"}
	h.reg.Register(conn)

	h.handle(conn, []byte(`{"event":"join-room","data":{"roomId":"alpha","username":"ann","color":"#fff"}}`))

	cu, ok := conn.lastCursorUpdate(t)
	require.True(t, ok)
	require.Contains(t, cu.Cursors, "c1")
	assert.Equal(t, "ann", cu.Cursors["c1"].Username)
	assert.Equal(t, "#fff", cu.Cursors["c1"].Color)
	assert.Equal(t, []string{"alpha"}, h.reg.Rooms("c1"))
}

func TestHandle_SendMessageUsesConnectionID(t *testing.T) {
	h := newTestHub()
	conn := &mockSender{id: "c1"}
	h.reg.Register(conn)
	h.handle(conn, []byte(`{"event":"join-room","data":{"roomId":"alpha","username":"ann","color":"#fff"}}`))

	h.handle(conn, []byte(`{"event":"send-message","data":{"roomId":"alpha","message":"hi","username":"ann"}}`))

	payloads := conn.byEvent(t, EventNewMessage)
	require.Len(t, payloads, 1)

	var msg Message
	require.NoError(t, json.Unmarshal(payloads[0], &msg))
	assert.Equal(t, "c1", msg.SenderID)
	assert.Equal(t, "hi", msg.Content)
}

func TestHandle_UnknownEventNamesNeverMintMetricLabels(t *testing.T) {
	h := newTestHub()
	conn := &mockSender{id: "c1"}
	h.reg.Register(conn)

	unknownBefore := testutil.ToFloat64(metrics.EventsTotal.WithLabelValues("unknown"))
	childrenBefore := testutil.CollectAndCount(metrics.EventsTotal)

	for i := 0; i < 500; i++ {
		h.handle(conn, []byte(fmt.Sprintf(`{"event":"junk-%d","data":{}}`, i)))
	}

	// Every junk name lands on the one fixed "unknown" child
	assert.Equal(t, childrenBefore, testutil.CollectAndCount(metrics.EventsTotal))
	assert.Equal(t, unknownBefore+500, testutil.ToFloat64(metrics.EventsTotal.WithLabelValues("unknown")))
}

func TestHandle_DropsBadFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame string
	}{
		{"not json", `not json`},
		{"unknown event", `{"event":"teleport","data":{}}`},
		{"missing room id", `{"event":"join-room","data":{"username":"ann"}}`},
		{"cursor move bad payload", `{"event":"cursor-move","data":"nope"}`},
		{"send message missing room", `{"event":"send-message","data":{"message":"hi"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHub()
			conn := &mockSender{id: "c1"}
			h.reg.Register(conn)

			h.handle(conn, []byte(tt.frame))

			assert.Zero(t, conn.frameCount())
			assert.Empty(t, h.reg.Rooms("c1"))
		})
	}
}
