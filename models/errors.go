// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrPollClosed        = errors.New("poll is not open for voting")
	ErrInvalidOption     = errors.New("invalid option")
	ErrDuplicateVote     = errors.New("user has already voted in this poll")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrAuthFailure       = errors.New("invalid username or password")
)

// Invalid returns an error wrapping ErrValidation with a description of the bad input.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
