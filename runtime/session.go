package runtime

import (
	"chat-room/domain"
	"chat-room/errors"
	"context"
	"sync"

	"github.com/google/uuid"
)

type SessionState int

const (
	StateDisconnected SessionState = iota
	StateJoining
	StateJoined
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateJoining:
		return "joining"
	case StateJoined:
		return "joined"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is one live connection.
// Its room and username are bound by the first join and never change afterwards.
// Every intent issued after Close is dropped without error.
type Session struct {
	id     domain.SessionID
	engine *Orchestrator

	mu       sync.Mutex
	state    SessionState
	room     domain.RoomID
	username string
}

func newSession(id domain.SessionID, engine *Orchestrator) *Session {
	return &Session{id: id, engine: engine}
}

func (s *Session) ID() domain.SessionID {
	return s.id
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Room() domain.RoomID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room
}

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// Join binds the session and asks the room for its history and presence.
// Joining again with the same binding replays both, any other binding is refused.
func (s *Session) Join(ctx context.Context, roomID domain.RoomID, username string) error {
	s.mu.Lock()
	switch s.state {
	case StateClosed:
		s.mu.Unlock()
		return nil
	case StateJoining, StateJoined:
		if s.room != roomID || s.username != username {
			s.mu.Unlock()
			return errors.ErrAlreadyJoined
		}
	default:
		s.state = StateJoining
		s.room = roomID
		s.username = username
	}
	s.mu.Unlock()

	cmd := domain.JoinCommand{Target: s.target(roomID), Username: username}
	if err := s.engine.dispatch(ctx, cmd); err != nil {
		s.mu.Lock()
		if s.state == StateJoining {
			s.state = StateDisconnected
			s.room = ""
			s.username = ""
		}
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if s.state == StateJoining {
		s.state = StateJoined
	}
	s.mu.Unlock()
	return nil
}

// Send posts a message as the bound username.
func (s *Session) Send(ctx context.Context, content string, replyTo *uuid.UUID) error {
	roomID, ok, err := s.bound()
	if !ok {
		return err
	}
	return s.engine.dispatch(ctx, domain.SendMessageCommand{
		Target:  s.target(roomID),
		Content: content,
		ReplyTo: replyTo,
	})
}

func (s *Session) Delete(ctx context.Context, messageID uuid.UUID) error {
	roomID, ok, err := s.bound()
	if !ok {
		return err
	}
	return s.engine.dispatch(ctx, domain.DeleteMessageCommand{
		Target:    s.target(roomID),
		MessageID: messageID,
	})
}

// Typing signals the start or the end of typing to the rest of the room.
func (s *Session) Typing(ctx context.Context, stopped bool) error {
	roomID, ok, err := s.bound()
	if !ok {
		return err
	}
	return s.engine.dispatch(ctx, domain.TypingCommand{
		Target:  s.target(roomID),
		Stopped: stopped,
	})
}

// Close is idempotent. The session stops receiving events at once, and its room is told to let it go.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	bound := s.state == StateJoining || s.state == StateJoined
	roomID := s.room
	s.state = StateClosed
	s.mu.Unlock()

	s.engine.closeSession(s.id, roomID, bound)
}

// bound returns the room of a joined session.
// A closed session reports ok=false with no error so its intents vanish quietly.
func (s *Session) bound() (domain.RoomID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateClosed:
		return "", false, nil
	case StateDisconnected:
		return "", false, errors.ErrNotJoined
	default:
		return s.room, true, nil
	}
}

func (s *Session) target(roomID domain.RoomID) domain.Target {
	return domain.Target{Room: roomID, Session: s.id}
}
