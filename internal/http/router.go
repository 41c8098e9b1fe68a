package httpx

import (
	"log/slog"
	"net/http"

	"collab-hub/internal/app"
	"collab-hub/internal/hub"
	"collab-hub/internal/store"
	"collab-hub/pkg/auth"
	"collab-hub/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, logger *slog.Logger, h *hub.Hub, db *store.Postgres) http.Handler {
	mw := NewMiddleware(cfg)
	roomsAPI := &RoomsAPI{DB: db, Hub: h}

	// Auth API
	j := auth.New(cfg.JWTSecret)
	authAPI := &AuthAPI{DB: db, JWT: j}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint; the hub trusts join-time identity, so no
	// auth middleware here
	mux.Handle("/ws", http.HandlerFunc(h.ServeWS))

	// Auth endpoints
	mux.Handle("/api/auth/register", http.HandlerFunc(authAPI.Register))
	mux.Handle("/api/auth/login", http.HandlerFunc(authAPI.Login))
	mux.Handle("/api/auth/me", mw.Auth(http.HandlerFunc(authAPI.Me)))

	// Room metadata endpoints (JWT-protected writes)
	mux.Handle("/api/rooms", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			mw.Auth(http.HandlerFunc(roomsAPI.Create)).ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodGet {
			roomsAPI.List(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	mux.Handle("/api/rooms/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			mw.Auth(http.HandlerFunc(roomsAPI.Delete)).ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodGet {
			roomsAPI.Get(w, r)
			return
		}
		http.NotFound(w, r)
	}))

	// CORS + rate limit applied globally
	return mw.Wrap(mux)
}
