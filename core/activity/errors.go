package activity

import "errors"

var (
	// ErrNoLog is returned when a user owns no activity log at all, such as
	// principals created outside the regular signup flow. The recorder
	// treats it as "skip this user", never as a failure.
	ErrNoLog = errors.New("activity log not found")
)
