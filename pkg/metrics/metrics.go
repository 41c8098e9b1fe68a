package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActiveConnections gauges live websocket connections.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hub_active_connections",
		Help: "Number of open websocket connections.",
	})

	// EventsTotal counts inbound client events by name.
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hub_events_total",
		Help: "Inbound client events processed, by event name.",
	}, []string{"event"})

	// DroppedSends counts frames dropped because a connection's
	// outbound buffer was full.
	DroppedSends = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hub_dropped_sends_total",
		Help: "Outbound frames dropped on saturated connection buffers.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
