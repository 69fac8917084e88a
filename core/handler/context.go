package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the middleware chain.
// It extends context.Context with access to the underlying request/response
// pair and a request-scoped value store. Values set with SetValue live for
// exactly one request; they never leak into the next request even when a
// context implementation is pooled and reused.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	SetValue(key, val any)
}
