package middleware

import (
	"github.com/dmitrymomot/forumkit/core/handler"
	"github.com/dmitrymomot/forumkit/pkg/clientip"
)

// realIPContextKey is used as a key for storing the client IP in request context.
type realIPContextKey struct{}

// RealIPConfig configures the client IP resolution middleware.
type RealIPConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
}

// RealIP creates middleware that resolves the originating client IP and
// stores it in the request context. Behind a trusted reverse proxy the first
// X-Forwarded-For entry wins; otherwise the transport peer address is used.
func RealIP[C handler.Context]() handler.Middleware[C] {
	return RealIPWithConfig[C](RealIPConfig[C]{})
}

// RealIPWithConfig creates the client IP resolution middleware with custom
// configuration.
func RealIPWithConfig[C handler.Context](cfg RealIPConfig[C]) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			ctx.SetValue(realIPContextKey{}, clientip.GetIP(ctx.Request()))
			return next(ctx)
		}
	}
}

// GetRealIP retrieves the resolved client IP from the request context.
// Returns the IP and a boolean indicating whether it was found.
func GetRealIP(ctx handler.Context) (string, bool) {
	ip, ok := ctx.Value(realIPContextKey{}).(string)
	return ip, ok
}
