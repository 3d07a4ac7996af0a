// Package protocol defines the JSON envelopes exchanged over the websocket.
// Every frame is {"type": "...", "payload": {...}}, the set of types is closed
// and payloads are validated here, before anything reaches a session.
package protocol

import (
	"chat-room/errors"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Type string

const (
	// client → server
	TypeJoin       Type = "join"
	TypeSend       Type = "send"
	TypeDelete     Type = "delete"
	TypeTyping     Type = "typing"
	TypeStopTyping Type = "stop-typing"

	// server → client
	TypeHistory  Type = "history"
	TypePresence Type = "presence"
	TypeMessage  Type = "message"
	TypeDeleted  Type = "deleted"
	TypeError    Type = "error"
)

const MaxContentLength = 4000

type Envelope struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client payloads

type JoinPayload struct {
	RoomID   string `json:"roomId" validate:"required,notblank,max=64"`
	Username string `json:"username" validate:"required,notblank,max=32"`
}

type SendPayload struct {
	RoomID  string  `json:"roomId,omitempty"`
	Author  string  `json:"author,omitempty"`
	Content string  `json:"content" validate:"required,notblank,max=4000"`
	ReplyTo *string `json:"replyTo,omitempty" validate:"omitempty,uuid"`
}

type DeletePayload struct {
	RoomID    string `json:"roomId,omitempty"`
	MessageID string `json:"messageId" validate:"required,uuid"`
}

type TypingPayload struct {
	RoomID   string `json:"roomId,omitempty"`
	Username string `json:"username,omitempty"`
}

// Server payloads

type ReplyView struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

type MessageView struct {
	ID        string     `json:"id"`
	Author    string     `json:"author"`
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp"`
	ReplyTo   *ReplyView `json:"replyTo,omitempty"`
}

type HistoryPayload struct {
	Messages []MessageView `json:"messages"`
}

type PresencePayload struct {
	Users []string `json:"users"`
}

type DeletedPayload struct {
	MessageID string `json:"messageId"`
}

type TypingNotice struct {
	Username string `json:"username"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Admission, over plain HTTP

type AdmitRequest struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type AdmitResponse struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	Token    string `json:"token"`
	Created  bool   `json:"created"`
	Message  string `json:"message"`
}

type RoomResponse struct {
	RoomID    string    `json:"roomId"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Encode wraps a payload in an envelope and serializes it.
func Encode(t Type, payload any) ([]byte, error) {
	env, err := NewEnvelope(t, payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

func NewEnvelope(t Type, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: t, Payload: raw}, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidPayload, fmt.Sprintf(format, args...))
}

func decodePayload(env Envelope, target any) error {
	if len(env.Payload) == 0 {
		return invalid("%s: payload is missing", env.Type)
	}
	if err := json.Unmarshal(env.Payload, target); err != nil {
		return invalid("%s: %v", env.Type, err)
	}
	return nil
}
