package handler

import "errors"

// ErrNilResponse is reported when a handler returns a nil Response function.
var ErrNilResponse = errors.New("handler returned nil response")
