package idle

import "errors"

// ErrBadTimestamp is returned when the stored last-request value cannot be
// parsed. The enforcer treats this as a fresh stamp rather than an error.
var ErrBadTimestamp = errors.New("malformed last-request timestamp")
