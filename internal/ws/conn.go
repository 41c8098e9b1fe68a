package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

// ErrBufferFull is returned by Send when a connection's outbound
// buffer is saturated and the frame was dropped instead of blocking.
var ErrBufferFull = errors.New("ws: outbound buffer full")

type Conn struct {
	id  string
	ws  *websocket.Conn
	out chan []byte
}

// Accept upgrades HTTP to websocket (allow all origins)
func Accept(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  []string{"*"},
		CompressionMode: websocket.CompressionDisabled,
	})
}

// NewConn wraps a websocket under a hub-assigned connection id.
func NewConn(id string, ws *websocket.Conn) *Conn {
	return &Conn{
		id:  id,
		ws:  ws,
		out: make(chan []byte, 256),
	}
}

// ID is the transport-level identity, unique while the connection is open.
func (c *Conn) ID() string { return c.id }

// Send queues a frame for delivery without blocking. Frames are
// dropped with ErrBufferFull when the peer cannot keep up.
func (c *Conn) Send(data []byte) error {
	select {
	case c.out <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Read blocks until it receives a text/binary message
// Returns false if connection is closed
func (c *Conn) Read(ctx context.Context) ([]byte, bool) {
	for {
		typ, data, err := c.ws.Read(ctx)
		if err != nil {
			return nil, false
		}
		if typ == websocket.MessageText || typ == websocket.MessageBinary {
			return []byte(data), true
		}
	}
}

// WriteLoop sends outbound messages + periodic pings
// Exits when ctx is cancelled
func (c *Conn) WriteLoop(ctx context.Context) {
	p := 20 * time.Second
	t := time.NewTicker(p)
	defer t.Stop()

	for {
		select {
		case b := <-c.out:
			_ = c.ws.Write(ctx, websocket.MessageText, b)
		case <-t.C:
			_ = c.ws.Ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Close closes the WS connection normally
func (c *Conn) Close() error { return c.ws.Close(websocket.StatusNormalClosure, "bye") }
