package server

import (
	"chat-room/auth"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Chat       *ChatServer
	Admission  *AdmissionServer
	Rooms      *RoomServer
	Monitoring *MonitoringServer
}

// NewRouter mounts every endpoint. Monitoring is optional.
func NewRouter(log *slog.Logger, h Handlers, grants auth.GrantValidator, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))
	r.Use(CORS(allowedOrigins))

	r.Post("/rooms/join", h.Admission.Join)

	r.Group(func(r chi.Router) {
		r.Use(auth.Interceptor(grants))
		r.Get("/ws", h.Chat.Connect)
		r.Get("/rooms/{roomId}", h.Admission.Room)
		r.Get("/rooms/{roomId}/messages", h.Rooms.History)
		r.Get("/rooms/{roomId}/presence", h.Rooms.Presence)
	})

	if h.Monitoring != nil {
		r.Get("/debug/stats", h.Monitoring.Stats)
	}
	return r
}
