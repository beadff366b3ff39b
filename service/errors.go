package service

import (
	"errors"
	"fmt"

	"realty-agent/repository"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = repository.ErrNotFound
	// ErrUnauthorized is returned for bad credentials or an unknown session.
	ErrUnauthorized = errors.New("no autorizado")
)

// ValidationError reports input rejected by a service. Its message is safe
// to show to the end user.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
