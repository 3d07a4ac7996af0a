//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-room/domain"
	"chat-room/domain/event"
	"context"
	"reflect"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the delivery queue of one session.
// Consume must never block the caller.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Attachment describes a session joined to a room.
type Attachment struct {
	Username string
	Typing   bool
}

// IPresence is the room registry: live usernames per room plus the sinks of the sessions joined to it.
type IPresence interface {
	Connect(sessionID domain.SessionID, sink EventSink)
	Disconnect(sessionID domain.SessionID)
	SinkFor(sessionID domain.SessionID) EventSink

	AddUser(roomID domain.RoomID, username string)
	RemoveUser(roomID domain.RoomID, username string)
	ListUsers(roomID domain.RoomID) []string
	HasUsername(roomID domain.RoomID, username string) bool

	Attach(roomID domain.RoomID, sessionID domain.SessionID, username string)
	Detach(roomID domain.RoomID, sessionID domain.SessionID) (Attachment, bool)
	Attachment(roomID domain.RoomID, sessionID domain.SessionID) (Attachment, bool)
	IsAttached(roomID domain.RoomID, username string) bool
	SetTyping(roomID domain.RoomID, sessionID domain.SessionID, typing bool)
	SinksForRoom(roomID domain.RoomID, except domain.SessionID) []EventSink
}

// IReplyResolver turns reply references into fresh snapshots.
type IReplyResolver interface {
	Resolve(roomID domain.RoomID, replyTo *uuid.UUID) *domain.ReplySnapshot
	Hydrate(message domain.Message) domain.HydratedMessage
}

// Censor rewrites message content before it is appended.
type Censor interface {
	Censor(content string) string
}

// IMonitor receives the engine's runtime counters.
type IMonitor interface {
	SessionOpened()
	SessionClosed()
	RoomStarted()
	RoomRetired()
	MessagePosted()
	MessageDeleted()
	CommandRejected()
	DeliveryDropped()
}
