package auth

import (
	"chat-room/errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank refuses strings made only of whitespace
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validator exposes the shared instance, so wire payloads follow the same rules as admission.
func Validator() *validator.Validate {
	return validate
}

type JoinRequest struct {
	RoomID   string `validate:"required,notblank,max=64"`
	Password string `validate:"required,max=72"`
	Username string `validate:"required,notblank,max=32,excludesall=\t\n\r"`
}

// ValidateJoin checks the shape of an admission request, it never looks at the room.
func ValidateJoin(req JoinRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return nil
}
