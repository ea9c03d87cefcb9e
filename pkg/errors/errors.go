package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooManyFiles indicates a file field exceeded its allowed count
	ErrTooManyFiles = errors.New("too many files")

	// ErrNotificationFailed indicates the summary message could not be delivered
	ErrNotificationFailed = errors.New("notification failed")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// TooManyFilesError creates a file-count error for a form field
func TooManyFilesError(field string, limit int) error {
	return fmt.Errorf("%s: limit is %d per field: %w", field, limit, ErrTooManyFiles)
}

// NotificationError wraps a Telegram sendMessage failure
func NotificationError(err error) error {
	return fmt.Errorf("%v: %w", err, ErrNotificationFailed)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
