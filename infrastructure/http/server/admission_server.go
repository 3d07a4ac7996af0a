package server

import (
	"chat-room/auth"
	"chat-room/errors"
	"chat-room/infrastructure/http/protocol"
	"chat-room/services"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/samber/lo"
)

const maxAdmitBody = 16 * 1024

type AdmissionServer struct {
	log       *slog.Logger
	admission services.IAdmissionService
}

func NewAdmissionServer(log *slog.Logger, admission services.IAdmissionService) *AdmissionServer {
	return &AdmissionServer{log: log, admission: admission}
}

// Join admits the caller into a room and returns the grant to present on the websocket.
func (s *AdmissionServer) Join(w http.ResponseWriter, r *http.Request) {
	var req protocol.AdmitRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdmitBody))
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.ErrorResponse{Error: errors.ErrInvalidRequest.Error()})
		return
	}

	grant, err := s.admission.Admit(auth.JoinRequest{
		RoomID:   req.RoomID,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		status := errors.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.log.Error("Admission failed", "room", req.RoomID, "error", err)
			writeJSON(w, status, protocol.ErrorResponse{Error: errors.ErrUnavailable.Error()})
			return
		}
		s.log.Debug("Admission refused", "room", req.RoomID, "username", req.Username, "error", err)
		writeJSON(w, status, protocol.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, protocol.AdmitResponse{
		RoomID:   string(grant.RoomID),
		Username: grant.Username,
		Token:    grant.Token,
		Created:  grant.Created,
		Message:  grant.Message(),
	})
}

// Room describes the room of the caller's grant: every member ever admitted, online or not.
func (s *AdmissionServer) Room(w http.ResponseWriter, r *http.Request) {
	roomID, ok := authorizedRoom(w, r)
	if !ok {
		return
	}
	room, err := s.admission.Room(roomID)
	if err != nil {
		status := errors.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.log.Error("Room unavailable", "room", roomID, "error", err)
			writeJSON(w, http.StatusServiceUnavailable, protocol.ErrorResponse{Error: errors.ErrUnavailable.Error()})
			return
		}
		writeJSON(w, status, protocol.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, protocol.RoomResponse{
		RoomID:    string(room.ID),
		Members:   lo.Ternary(room.Members == nil, []string{}, room.Members),
		CreatedAt: room.CreatedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
