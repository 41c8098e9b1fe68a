package hub

import (
	"encoding/json"
	"log/slog"

	"collab-hub/pkg/metrics"
)

// Dispatcher fans events out to connections. Delivery is best-effort
// and isolated: one slow or dead connection never blocks the rest.
type Dispatcher struct {
	reg *Registry
	log *slog.Logger
}

func NewDispatcher(reg *Registry, log *slog.Logger) *Dispatcher {
	return &Dispatcher{reg: reg, log: log}
}

// ToRoom delivers an event to every connection in the room at the
// instant of the call.
func (d *Dispatcher) ToRoom(roomID, event string, data any) {
	d.fanOut(d.reg.InRoom(roomID), "", event, data)
}

// ToRoomExcept delivers to every room member except one connection.
func (d *Dispatcher) ToRoomExcept(roomID, exceptID, event string, data any) {
	d.fanOut(d.reg.InRoom(roomID), exceptID, event, data)
}

// ToConn delivers an event to a single connection. Unknown ids are
// ignored.
func (d *Dispatcher) ToConn(connID, event string, data any) {
	conn := d.reg.Conn(connID)
	if conn == nil {
		return
	}
	d.fanOut([]Sender{conn}, "", event, data)
}

// ToAll delivers an event to every live connection regardless of room.
func (d *Dispatcher) ToAll(event string, data any) {
	d.fanOut(d.reg.All(), "", event, data)
}

func (d *Dispatcher) fanOut(conns []Sender, exceptID, event string, data any) {
	frame, err := encode(event, data)
	if err != nil {
		d.log.Error("dispatch.encode", "event", event, "err", err)
		return
	}
	for _, conn := range conns {
		if conn.ID() == exceptID {
			continue
		}
		if err := conn.Send(frame); err != nil {
			metrics.DroppedSends.Inc()
			d.log.Debug("dispatch.drop", "event", event, "conn", conn.ID(), "err", err)
		}
	}
}

func encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
