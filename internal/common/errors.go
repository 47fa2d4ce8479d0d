// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Configuration errors. These are the only errors that abort a run.
	ErrMissingConfig    = errors.New("missing configuration")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrMonitorNotFound  = errors.New("monitor folder does not exist")
	ErrMonitorNotFolder = errors.New("monitor folder is not a directory")

	// Per-file errors. Absorbed by the orchestrator, never fatal.
	ErrDigestFailed = errors.New("content digest failed")
	ErrFileVanished = errors.New("file vanished before processing")

	// Classifier errors.
	ErrClassifierUnavailable = errors.New("external classifier unavailable")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
