package models

import (
	"errors"

	"gorm.io/gorm"
)

// Error taxonomy shared by the content packages and the HTTP layer.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError carries a message safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports ValidationError as ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsNotFound matches both the package sentinel and gorm's.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
