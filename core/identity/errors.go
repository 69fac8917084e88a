package identity

import "errors"

// ErrUserNotFound is returned by UserSource implementations when no user
// exists for the given ID. The gate treats it as an anonymous request.
var ErrUserNotFound = errors.New("user not found")
