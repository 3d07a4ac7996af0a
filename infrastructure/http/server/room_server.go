package server

import (
	"chat-room/auth"
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/infrastructure/http/protocol"
	"chat-room/services"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

// RoomServer serves read-only views of a room to its grant holders.
type RoomServer struct {
	log         *slog.Logger
	chatService services.IChatService
}

func NewRoomServer(log *slog.Logger, chatService services.IChatService) *RoomServer {
	return &RoomServer{log: log, chatService: chatService}
}

func (s *RoomServer) History(w http.ResponseWriter, r *http.Request) {
	roomID, ok := authorizedRoom(w, r)
	if !ok {
		return
	}
	history, err := s.chatService.History(r.Context(), roomID)
	if err != nil {
		s.log.Error("History unavailable", "room", roomID, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, protocol.ErrorResponse{Error: errors.ErrUnavailable.Error()})
		return
	}
	writeJSON(w, http.StatusOK, protocol.HistoryPayload{
		Messages: lo.Map(history, func(m domain.HydratedMessage, _ int) protocol.MessageView {
			return protocol.ToMessageView(m)
		}),
	})
}

func (s *RoomServer) Presence(w http.ResponseWriter, r *http.Request) {
	roomID, ok := authorizedRoom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, protocol.PresencePayload{Users: s.chatService.Presence(roomID)})
}

// authorizedRoom reads the room from the path, the grant must be for that room.
func authorizedRoom(w http.ResponseWriter, r *http.Request) (domain.RoomID, bool) {
	grant, ok := auth.GrantFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, protocol.ErrorResponse{Error: errors.ErrInvalidToken.Error()})
		return "", false
	}
	roomID := domain.RoomID(chi.URLParam(r, "roomId"))
	if roomID != grant.RoomID() {
		writeJSON(w, http.StatusForbidden, protocol.ErrorResponse{Error: errors.ErrGrantMismatch.Error()})
		return "", false
	}
	return roomID, true
}
