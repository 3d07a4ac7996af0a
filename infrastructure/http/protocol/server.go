package protocol

import (
	"chat-room/domain"
	"chat-room/domain/event"
	"chat-room/errors"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// FromDomainEvent renders an engine event as a server frame.
func FromDomainEvent(e event.DomainEvent) ([]byte, error) {
	switch evt := e.(type) {
	case event.HistoryDelivered:
		return Encode(TypeHistory, HistoryPayload{
			Messages: lo.Map(evt.Messages, func(m domain.HydratedMessage, _ int) MessageView {
				return ToMessageView(m)
			}),
		})
	case event.PresenceChanged:
		return Encode(TypePresence, PresencePayload{Users: lo.Ternary(evt.Users == nil, []string{}, evt.Users)})
	case event.MessagePosted:
		return Encode(TypeMessage, ToMessageView(evt.Message))
	case event.MessageDeleted:
		return Encode(TypeDeleted, DeletedPayload{MessageID: evt.MessageID.String()})
	case event.UserTyping:
		return Encode(TypeTyping, TypingNotice{Username: evt.Username})
	case event.UserStoppedTyping:
		return Encode(TypeStopTyping, TypingNotice{Username: evt.Username})
	case event.CommandRejected:
		return EncodeError(evt.Reason)
	default:
		return nil, fmt.Errorf("no frame for event %T", e)
	}
}

// EncodeError reports a failure to the requester only.
func EncodeError(err error) ([]byte, error) {
	return Encode(TypeError, ErrorPayload{Code: errors.Code(err), Message: err.Error()})
}

func ToMessageView(m domain.HydratedMessage) MessageView {
	view := MessageView{
		ID:        m.ID.String(),
		Author:    m.Author,
		Content:   m.Content,
		Timestamp: m.CreatedAt,
	}
	if m.Reply != nil {
		view.ReplyTo = &ReplyView{
			ID:      m.Reply.ID.String(),
			Author:  m.Reply.Author,
			Content: m.Reply.Content,
		}
	}
	return view
}

// ServerEvent is one of History, Presence, Posted, Deleted, TypingChanged, Failure.
type ServerEvent interface {
	serverEvent()
}

type History struct {
	Messages []MessageView
}

type Presence struct {
	Users []string
}

type Posted struct {
	Message MessageView
}

type Deleted struct {
	MessageID uuid.UUID
}

type TypingChanged struct {
	Username string
	Stopped  bool
}

type Failure struct {
	Code    string
	Message string
}

func (History) serverEvent()       {}
func (Presence) serverEvent()      {}
func (Posted) serverEvent()        {}
func (Deleted) serverEvent()       {}
func (TypingChanged) serverEvent() {}
func (Failure) serverEvent()       {}

// DecodeServer parses a server frame on the client side.
func DecodeServer(data []byte) (ServerEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, invalid("malformed envelope: %v", err)
	}
	return ParseServer(env)
}

// ParseServer reads an envelope already decoded, e.g. by wsjson.
func ParseServer(env Envelope) (ServerEvent, error) {
	switch env.Type {
	case TypeHistory:
		var p HistoryPayload
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		return History{Messages: p.Messages}, nil
	case TypePresence:
		var p PresencePayload
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		return Presence{Users: p.Users}, nil
	case TypeMessage:
		var p MessageView
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		return Posted{Message: p}, nil
	case TypeDeleted:
		var p DeletedPayload
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(p.MessageID)
		if err != nil {
			return nil, invalid("deleted: %v", err)
		}
		return Deleted{MessageID: id}, nil
	case TypeTyping, TypeStopTyping:
		var p TypingNotice
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		return TypingChanged{Username: p.Username, Stopped: env.Type == TypeStopTyping}, nil
	case TypeError:
		var p ErrorPayload
		if err := decodePayload(env, &p); err != nil {
			return nil, err
		}
		return Failure{Code: p.Code, Message: p.Message}, nil
	default:
		return nil, invalid("unknown type %q", env.Type)
	}
}
