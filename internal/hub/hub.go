package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"collab-hub/internal/ws"
	"collab-hub/pkg/metrics"
)

// Hub wires the registry, room store, presence and chat engines, and
// the broadcast dispatcher behind a single websocket entry point.
type Hub struct {
	log *slog.Logger
	bus *Bus

	reg      *Registry
	store    *Store
	out      *Dispatcher
	presence *Presence
	chat     *Chat
}

// New builds a hub. bus may be nil when room-created propagation is
// not wired (tests).
func New(log *slog.Logger, bus *Bus) *Hub {
	reg := NewRegistry()
	store := NewStore()
	out := NewDispatcher(reg, log)
	return &Hub{
		log:      log,
		bus:      bus,
		reg:      reg,
		store:    store,
		out:      out,
		presence: NewPresence(store, reg, out),
		chat:     NewChat(store, out),
	}
}

// Run forwards room-created announcements from the bus to every
// connected client until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	if h.bus == nil {
		<-ctx.Done()
		return
	}
	go h.bus.Subscribe(ctx, func(a RoomAnnouncement) {
		h.out.ToAll(EventRoomCreated, a)
	})
	<-ctx.Done()
}

// AnnounceRoom publishes a room-created notification for all
// instances to propagate.
func (h *Hub) AnnounceRoom(ctx context.Context, a RoomAnnouncement) error {
	if h.bus == nil {
		return nil
	}
	return h.bus.Publish(ctx, a)
}

// ServeWS upgrades the request and runs the connection's event loop
// until the transport closes, then runs the disconnect path.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	sock, err := ws.Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}

	conn := ws.NewConn(uuid.NewString(), sock)
	h.reg.Register(conn)
	metrics.ActiveConnections.Inc()
	h.log.Info("ws.connected", "conn", conn.ID())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go conn.WriteLoop(ctx)

	for {
		frame, ok := conn.Read(ctx)
		if !ok {
			break
		}
		h.handle(conn, frame)
	}

	h.presence.Disconnect(conn.ID())
	_ = conn.Close()
	metrics.ActiveConnections.Dec()
	h.log.Info("ws.disconnected", "conn", conn.ID())
}

// handle decodes one inbound frame and dispatches it to the right
// engine. Malformed frames are dropped; one bad connection must not
// disturb room processing for others.
func (h *Hub) handle(conn Sender, frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		h.log.Debug("event.malformed", "conn", conn.ID(), "err", err)
		return
	}

	// Only known event names become metric labels; anything else is
	// client-controlled input and must not mint label values.
	switch env.Event {
	case EventJoinRoom:
		metrics.EventsTotal.WithLabelValues(EventJoinRoom).Inc()
		var req joinRoomReq
		if err := json.Unmarshal(env.Data, &req); err != nil || req.RoomID == "" {
			h.log.Debug("event.drop", "event", env.Event, "conn", conn.ID())
			return
		}
		h.presence.Join(conn, req.RoomID, req.Username, req.Color)

	case EventCursorMove:
		metrics.EventsTotal.WithLabelValues(EventCursorMove).Inc()
		var req cursorMoveReq
		if err := json.Unmarshal(env.Data, &req); err != nil || req.RoomID == "" {
			h.log.Debug("event.drop", "event", env.Event, "conn", conn.ID())
			return
		}
		h.presence.CursorMove(conn.ID(), req.RoomID, req.X, req.Y)

	case EventSendMessage:
		metrics.EventsTotal.WithLabelValues(EventSendMessage).Inc()
		var req sendMessageReq
		if err := json.Unmarshal(env.Data, &req); err != nil || req.RoomID == "" {
			h.log.Debug("event.drop", "event", env.Event, "conn", conn.ID())
			return
		}
		h.chat.SendMessage(req.RoomID, conn.ID(), req.Username, req.Message)

	default:
		metrics.EventsTotal.WithLabelValues("unknown").Inc()
		h.log.Debug("event.unknown", "event", env.Event, "conn", conn.ID())
	}
}
