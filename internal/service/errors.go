package service

import (
	"errors"
	"fmt"

	"blogHub/internal/repository"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrLastAdmin    = errors.New("cannot remove the last admin")
)

// Error carries a client-facing message alongside one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// notFoundOr turns repository.ErrNotFound into a service not-found error, passes service errors through
// and wraps anything else.
func notFoundOr(err error, what string) error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "%s not found", what)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
