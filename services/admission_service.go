//go:generate go run go.uber.org/mock/mockgen -source=admission_service.go -destination=../mocks/mock_admission_service.go -package=mocks -exclude_interfaces=IAdmissionService
package services

import (
	"chat-room/auth"
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/repositories"
	"fmt"
	"log/slog"
	"strings"
)

// PresenceChecker tells whether a username is online in a room right now.
type PresenceChecker interface {
	HasUsername(roomID domain.RoomID, username string) bool
}

type GrantIssuer interface {
	Issue(roomID domain.RoomID, username string) (string, error)
}

type IAdmissionService interface {
	Admit(req auth.JoinRequest) (Grant, error)
	Room(roomID domain.RoomID) (domain.Room, error)
}

// Grant is what an admitted user takes to the websocket endpoint.
type Grant struct {
	RoomID   domain.RoomID
	Username string
	Token    string
	Created  bool
}

type AdmissionService struct {
	rooms    repositories.IRoomRepository
	presence PresenceChecker
	issuer   GrantIssuer
	log      *slog.Logger
}

func NewAdmissionService(rooms repositories.IRoomRepository, presence PresenceChecker,
	issuer GrantIssuer, log *slog.Logger) *AdmissionService {
	return &AdmissionService{rooms: rooms, presence: presence, issuer: issuer, log: log}
}

// Admit creates the room on first use, otherwise checks its password.
// A username is refused only while it is online in the room: durable members may come back.
func (s *AdmissionService) Admit(req auth.JoinRequest) (Grant, error) {
	// 1. Validate the request shape before any expensive cryptographic operation
	if err := auth.ValidateJoin(req); err != nil {
		return Grant{}, err
	}
	roomID := domain.RoomID(req.RoomID)
	username := strings.TrimSpace(req.Username)

	// 2. Create or verify the room, then record the member, in one transaction
	var created bool
	_, err := s.rooms.Upsert(roomID, func(room *domain.Room, exists bool) error {
		created = !exists
		if exists {
			match, err := auth.ComparePassword(req.Password, room.PasswordHash)
			if err != nil {
				return fmt.Errorf("stored password of room %s is unreadable: %w", roomID, err)
			}
			if !match {
				return errors.ErrWrongPassword
			}
		} else {
			// Hashing is done here to keep the repository unaware of plain passwords
			hash, err := auth.HashPassword(req.Password)
			if err != nil {
				return fmt.Errorf("hashing failed: %w", err)
			}
			room.PasswordHash = hash
		}
		if s.presence.HasUsername(roomID, username) {
			return errors.ErrUsernameTaken
		}
		room.AddMember(username)
		return nil
	})
	if err != nil {
		return Grant{}, err
	}

	// 3. Issue the grant bound to (room, username)
	token, err := s.issuer.Issue(roomID, username)
	if err != nil {
		return Grant{}, err
	}
	s.log.Info("User admitted", "room", roomID, "username", username, "created", created)
	return Grant{RoomID: roomID, Username: username, Token: token, Created: created}, nil
}

// Room returns the durable record of a room, errors.ErrRoomNotFound once it expired.
func (s *AdmissionService) Room(roomID domain.RoomID) (domain.Room, error) {
	return s.rooms.GetRoom(roomID)
}

func (g Grant) Message() string {
	if g.Created {
		return fmt.Sprintf("Room %s created", g.RoomID)
	}
	return fmt.Sprintf("Joined room %s", g.RoomID)
}
