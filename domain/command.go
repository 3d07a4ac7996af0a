package domain

import (
	"github.com/google/uuid"
)

// Command is an intent addressed to the worker owning a room.
type Command interface {
	RoomID() RoomID
	SessionID() SessionID
}

// Target identifies the room and the session a command is issued for.
type Target struct {
	Room    RoomID
	Session SessionID
}

func (t Target) RoomID() RoomID {
	return t.Room
}

func (t Target) SessionID() SessionID {
	return t.Session
}

type JoinCommand struct {
	Target
	Username string
}

type SendMessageCommand struct {
	Target
	Content string
	ReplyTo *uuid.UUID
}

type DeleteMessageCommand struct {
	Target
	MessageID uuid.UUID
}

type TypingCommand struct {
	Target
	Stopped bool
}

type LeaveCommand struct {
	Target
}
