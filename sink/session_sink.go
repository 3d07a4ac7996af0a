package sink

import (
	"chat-room/domain/event"
	"chat-room/errors"
	"context"
	"log/slog"
	"sync"
)

// SessionSink is the bounded delivery queue of one connection.
// Room workers push into it, the connection's writer drains Events.
type SessionSink struct {
	log        *slog.Logger
	events     chan event.DomainEvent
	done       chan struct{}
	closeOnce  sync.Once
	overflow   sync.Once
	onOverflow func()
}

// NewSessionSink creates a queue of bufferSize events.
// onOverflow runs once, in its own goroutine, the first time the queue is full.
func NewSessionSink(log *slog.Logger, bufferSize int, onOverflow func()) *SessionSink {
	return &SessionSink{
		log:        log,
		events:     make(chan event.DomainEvent, bufferSize),
		done:       make(chan struct{}),
		onOverflow: onOverflow,
	}
}

// Consume is called by room workers and never blocks them.
// A full queue means the reader is too slow to follow the room: the session is torn down
// rather than silently missing events.
func (s *SessionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case <-s.done:
		return errors.ErrSessionClosed
	default:
	}
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.overflow.Do(func() {
			s.log.Warn("Delivery queue full, closing session", "capacity", cap(s.events))
			if s.onOverflow != nil {
				go s.onOverflow()
			}
		})
		return errors.ErrSlowConsumer
	}
}

func (s *SessionSink) Events() <-chan event.DomainEvent {
	return s.events
}

// Done is closed with the sink.
func (s *SessionSink) Done() <-chan struct{} {
	return s.done
}

func (s *SessionSink) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
