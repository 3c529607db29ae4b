package chat

import (
	"fmt"

	"chat-core/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type AppendMessageCommand struct {
	RoomToken string `validate:"required"`
	Sender    string `validate:"required"`
	Content   string `validate:"required,max=4096"`
}

type GetMessagesCommand struct {
	RoomToken string `validate:"required"`
	Caller    string `validate:"required"`
	Cursor    *string
}

type ResolveRoomCommand struct {
	RoomToken string `validate:"required"`
	Caller    string `validate:"required"`
}

// Validate checks the struct tags of a command and wraps failures as invalid input.
func Validate(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	return nil
}
