package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrCacheMiss     = errors.New("cache miss")
	ErrSelfMatch     = errors.New("cannot match user with themselves")
	ErrAIUnavailable = errors.New("ai client is not initialized")
	ErrInvalidToken  = errors.New("invalid token")
)

// InvalidInputError describes a rejected scoring input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
