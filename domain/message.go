// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable once appended; the only allowed mutation is a hard delete by the author.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable chat message as stored by the message log.
type Message struct {
	ID        uuid.UUID // unique identifier
	Room      RoomID
	Seq       uint64 // append order within the room
	Author    string
	Content   string
	CreatedAt time.Time
	ReplyTo   *uuid.UUID
}

// ReplySnapshot is the read-only projection of a replied message.
// It is recomputed on every delivery and never cached.
type ReplySnapshot struct {
	ID      uuid.UUID
	Author  string
	Content string
}

// HydratedMessage is a Message ready to be delivered: its reply reference is resolved.
// Reply is nil when the message is not a reply or when the target no longer exists.
type HydratedMessage struct {
	Message
	Reply *ReplySnapshot
}

func (m Message) IsReply() bool {
	return m.ReplyTo != nil
}
