package middleware

import (
	"github.com/dmitrymomot/forumkit/core/handler"
	"github.com/dmitrymomot/forumkit/core/idle"
	"github.com/dmitrymomot/forumkit/core/identity"
)

// IdleTimeoutConfig configures the idle-timeout middleware.
type IdleTimeoutConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Enforcer applies the idle policy to the session
	Enforcer *idle.Enforcer
}

// IdleTimeout creates middleware that logs out sessions left idle for too
// long. Enforcement runs after the response is computed, so the request that
// trips the timeout is still served; the logout takes effect when the session
// is persisted. A forced logout also demotes the in-context principal to
// anonymous, which lets outer middleware (presence) observe the sign-out
// during the same request.
func IdleTimeout[C handler.Context](enforcer *idle.Enforcer) handler.Middleware[C] {
	return IdleTimeoutWithConfig[C](IdleTimeoutConfig[C]{Enforcer: enforcer})
}

// IdleTimeoutWithConfig creates the idle-timeout middleware with custom
// configuration.
func IdleTimeoutWithConfig[C handler.Context](cfg IdleTimeoutConfig[C]) handler.Middleware[C] {
	if cfg.Enforcer == nil {
		cfg.Enforcer = idle.NewEnforcer()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			resp := next(ctx)

			if sess, ok := GetSession(ctx); ok {
				if cfg.Enforcer.Enforce(ctx.Request().Context(), sess) {
					ctx.SetValue(principalContextKey{}, identity.Anonymous())
				}
			}

			return resp
		}
	}
}
