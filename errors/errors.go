package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrEngineStopped   = fmt.Errorf("engine is not running")
	ErrMessageNotFound = fmt.Errorf("message not found")
	ErrForbidden       = fmt.Errorf("only the author can delete this message")
	ErrRoomNotFound    = fmt.Errorf("room not found")
	ErrWrongPassword   = fmt.Errorf("invalid password")
	ErrUsernameTaken   = fmt.Errorf("username already in use, please choose a different one")
	ErrInvalidRequest  = fmt.Errorf("invalid request")
	ErrInvalidPayload  = fmt.Errorf("invalid payload")
	ErrNotJoined       = fmt.Errorf("session has not joined this room")
	ErrAlreadyJoined   = fmt.Errorf("session is already bound to another room or username")
	ErrInvalidToken    = fmt.Errorf("invalid or expired token")
	ErrTokenGeneration = fmt.Errorf("token generation failed")
	ErrSlowConsumer    = fmt.Errorf("session delivery queue is full")
	ErrSessionClosed   = fmt.Errorf("session closed")
	ErrEmptyWords      = fmt.Errorf("no words have been found")
	ErrGrantMismatch   = fmt.Errorf("join does not match the admission grant")
	ErrUnavailable     = fmt.Errorf("service temporarily unavailable")
)

// Code maps an error to the code carried by the wire "error" event.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrForbidden), stderrors.Is(err, ErrGrantMismatch):
		return "forbidden"
	case stderrors.Is(err, ErrMessageNotFound):
		return "not_found"
	case stderrors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	case stderrors.Is(err, ErrNotJoined):
		return "not_joined"
	case stderrors.Is(err, ErrAlreadyJoined):
		return "already_joined"
	default:
		return "unavailable"
	}
}

// HTTPStatus maps admission errors to the status returned by the join endpoint.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case stderrors.Is(err, ErrWrongPassword), stderrors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case stderrors.Is(err, ErrGrantMismatch):
		return http.StatusForbidden
	case stderrors.Is(err, ErrUsernameTaken):
		return http.StatusConflict
	case stderrors.Is(err, ErrRoomNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
