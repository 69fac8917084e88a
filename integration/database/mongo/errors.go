package mongo

import "errors"

// Connection-level errors returned by New and Healthcheck.
var (
	ErrEmptyConnectionURL = errors.New("empty mongodb connection URL")
	ErrFailedToConnect    = errors.New("failed to connect to mongodb")
	ErrHealthcheckFailed  = errors.New("mongodb healthcheck failed")
)
