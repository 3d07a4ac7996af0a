package protocol

import (
	"chat-room/domain"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ClientMessage is one of Join, Send, Delete, Typing.
type ClientMessage interface {
	clientMessage()
}

type Join struct {
	RoomID   domain.RoomID
	Username string
}

// Send carries the room the client believes it is in, empty when omitted.
type Send struct {
	RoomID  domain.RoomID
	Content string
	ReplyTo *uuid.UUID
}

type Delete struct {
	RoomID    domain.RoomID
	MessageID uuid.UUID
}

type Typing struct {
	RoomID  domain.RoomID
	Stopped bool
}

func (Join) clientMessage()   {}
func (Send) clientMessage()   {}
func (Delete) clientMessage() {}
func (Typing) clientMessage() {}

// Decode parses a client frame. Any error wraps errors.ErrInvalidPayload.
// Author and username fields sent by clients are ignored, the session's binding is authoritative.
func Decode(data []byte) (ClientMessage, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, invalid("malformed envelope: %v", err)
	}

	switch env.Type {
	case TypeJoin:
		var p JoinPayload
		if err := decodeAndValidate(env, &p); err != nil {
			return nil, err
		}
		return Join{RoomID: domain.RoomID(p.RoomID), Username: strings.TrimSpace(p.Username)}, nil

	case TypeSend:
		var p SendPayload
		if err := decodeAndValidate(env, &p); err != nil {
			return nil, err
		}
		var replyTo *uuid.UUID
		if p.ReplyTo != nil {
			id, err := uuid.Parse(*p.ReplyTo)
			if err != nil {
				return nil, invalid("send: replyTo: %v", err)
			}
			replyTo = &id
		}
		return Send{RoomID: domain.RoomID(p.RoomID), Content: p.Content, ReplyTo: replyTo}, nil

	case TypeDelete:
		var p DeletePayload
		if err := decodeAndValidate(env, &p); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(p.MessageID)
		if err != nil {
			return nil, invalid("delete: messageId: %v", err)
		}
		return Delete{RoomID: domain.RoomID(p.RoomID), MessageID: id}, nil

	case TypeTyping, TypeStopTyping:
		var p TypingPayload
		// typing frames may come without payload
		if len(env.Payload) > 0 {
			if err := decodePayload(env, &p); err != nil {
				return nil, err
			}
		}
		return Typing{RoomID: domain.RoomID(p.RoomID), Stopped: env.Type == TypeStopTyping}, nil

	case "":
		return nil, invalid("type is missing")
	default:
		return nil, invalid("unknown type %q", env.Type)
	}
}

func decodeAndValidate(env Envelope, target any) error {
	if err := decodePayload(env, target); err != nil {
		return err
	}
	if err := validate.Struct(target); err != nil {
		return invalid("%s: %v", env.Type, err)
	}
	return nil
}

// EncodeJoin and friends build client frames.

func EncodeJoin(roomID domain.RoomID, username string) ([]byte, error) {
	return Encode(TypeJoin, JoinPayload{RoomID: string(roomID), Username: username})
}

func EncodeSend(roomID domain.RoomID, content string, replyTo *uuid.UUID) ([]byte, error) {
	p := SendPayload{RoomID: string(roomID), Content: content}
	if replyTo != nil {
		p.ReplyTo = lo.ToPtr(replyTo.String())
	}
	return Encode(TypeSend, p)
}

func EncodeDelete(roomID domain.RoomID, messageID uuid.UUID) ([]byte, error) {
	return Encode(TypeDelete, DeletePayload{RoomID: string(roomID), MessageID: messageID.String()})
}

func EncodeTyping(roomID domain.RoomID, stopped bool) ([]byte, error) {
	t := lo.Ternary(stopped, TypeStopTyping, TypeTyping)
	return Encode(t, TypingPayload{RoomID: string(roomID)})
}
