// Package event holds what the room workers emit towards session sinks.
// The set is closed: one type per server-to-client event kind.
package event

import (
	"chat-room/domain"

	"github.com/google/uuid"
)

type DomainEvent interface {
	RoomID() domain.RoomID
}

// HistoryDelivered is sent once to the joining session only.
type HistoryDelivered struct {
	Room     domain.RoomID
	Messages []domain.HydratedMessage
}

func (h HistoryDelivered) RoomID() domain.RoomID {
	return h.Room
}

// PresenceChanged carries the full list of usernames online in the room.
type PresenceChanged struct {
	Room  domain.RoomID
	Users []string
}

func (p PresenceChanged) RoomID() domain.RoomID {
	return p.Room
}

type MessagePosted struct {
	Room    domain.RoomID
	Message domain.HydratedMessage
}

func (m MessagePosted) RoomID() domain.RoomID {
	return m.Room
}

type MessageDeleted struct {
	Room      domain.RoomID
	MessageID uuid.UUID
}

func (m MessageDeleted) RoomID() domain.RoomID {
	return m.Room
}

// UserTyping is never delivered back to the typing session.
type UserTyping struct {
	Room     domain.RoomID
	Username string
}

func (u UserTyping) RoomID() domain.RoomID {
	return u.Room
}

type UserStoppedTyping struct {
	Room     domain.RoomID
	Username string
}

func (u UserStoppedTyping) RoomID() domain.RoomID {
	return u.Room
}

// CommandRejected is reported to the requesting session only.
type CommandRejected struct {
	Room   domain.RoomID
	Reason error
}

func (c CommandRejected) RoomID() domain.RoomID {
	return c.Room
}
