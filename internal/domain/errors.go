package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgNotFound             = "not found"
	ErrMsgUserNotFound         = "user not found"
	ErrMsgPlanetNotFound       = "planet not found"
	ErrMsgExpeditionNotFound   = "active expedition not found"
	ErrMsgActiveExpedition     = "you already have an active expedition"
	ErrMsgExpeditionExpired    = "expedition time has expired"
	ErrMsgExpeditionNotExpired = "expedition has not ended yet"
	ErrMsgInvalidState         = "invalid expedition state"
	ErrMsgInvalidInput         = "invalid input"
	ErrMsgUnauthorized         = "unauthorized"
	ErrMsgTxClosed             = "tx is closed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound = errors.New(ErrMsgNotFound)

	// ErrConflict is returned when a second active expedition would be created
	ErrConflict = errors.New(ErrMsgActiveExpedition)

	// ErrExpired is returned when an in-window action is attempted after the end time
	ErrExpired = errors.New(ErrMsgExpeditionExpired)

	// ErrInvalidState covers state preconditions such as timing out before the end time
	ErrInvalidState = errors.New(ErrMsgInvalidState)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)
)

// Specific not-found errors. Each matches ErrNotFound with errors.Is.
var (
	ErrUserNotFound       = &notFoundError{msg: ErrMsgUserNotFound}
	ErrPlanetNotFound     = &notFoundError{msg: ErrMsgPlanetNotFound}
	ErrExpeditionNotFound = &notFoundError{msg: ErrMsgExpeditionNotFound}
)

type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// ErrNotExpired is an invalid-state error for time-up requested before the end time
var ErrNotExpired = &invalidStateError{msg: ErrMsgExpeditionNotExpired}

type invalidStateError struct {
	msg string
}

func (e *invalidStateError) Error() string { return e.msg }

func (e *invalidStateError) Is(target error) bool { return target == ErrInvalidState }
