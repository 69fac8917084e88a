package reqctx

import (
	"net/http"
	"time"
)

// Context is the default request context implementation. It delegates the
// context.Context methods to the request's context and keeps request-scoped
// values in its own store, so middleware state set during one request can
// never be observed by another.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	values map[any]any
}

// New creates a request context for the given response writer and request.
func New(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		w: w,
		r: r,
		// values map is lazily initialized in SetValue when needed
	}
}

// Deadline returns the time when work done on behalf of this request
// should be canceled. Delegates to r.Context().
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when work done on behalf of this
// request should be canceled. Delegates to r.Context().
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed. Delegates to r.Context().
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns the request-scoped value for key if one was set with
// SetValue, falling back to the request's context.
func (c *Context) Value(key any) any {
	if val, ok := c.values[key]; ok {
		return val
	}
	return c.r.Context().Value(key)
}

// Request returns the *http.Request associated with the context.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the http.ResponseWriter associated with the context.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// SetValue stores a request-scoped value. Setting a nil value is allowed and
// distinct from never setting the key: Value still reports the key as present
// in the request store rather than falling through to the request context.
func (c *Context) SetValue(key, val any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}
