package experiment

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Submission errors
	ErrStartFailed   = errors.New("experiment start failed")
	ErrStartRejected = errors.New("experiment start rejected by collaborator")

	// Collection errors
	ErrNoResults        = errors.New("result history is empty")
	ErrResultIncomplete = errors.New("result is missing required fields")

	// Settlement
	ErrNotSettled = errors.New("experiment did not settle within budget")
)

// Error constructors with context
func NewStartRejectedError(status int, body string) error {
	return fmt.Errorf("%w: status %d: %s", ErrStartRejected, status, body)
}

func NewIncompleteResultError(field string) error {
	return fmt.Errorf("%w: %s", ErrResultIncomplete, field)
}

// Error checking helpers
func IsCollectionError(err error) bool {
	return errors.Is(err, ErrNoResults) || errors.Is(err, ErrResultIncomplete)
}
