package presence

import "errors"

var (
	// ErrNotFound is returned when no presence record exists for a user.
	// Callers branch on it; a missing record is expected control flow.
	ErrNotFound = errors.New("presence record not found")
)
