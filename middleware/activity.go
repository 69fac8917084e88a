package middleware

import (
	"github.com/dmitrymomot/forumkit/core/activity"
	"github.com/dmitrymomot/forumkit/core/handler"
)

// ActivityConfig configures the activity-session middleware.
type ActivityConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Recorder maintains per-user activity logs
	Recorder *activity.Recorder
}

// Activity creates middleware that records a per-user activity touch after
// each served request. Recording is best effort: anonymous principals and
// users without an existing log are skipped, and store failures are logged
// by the recorder without affecting the response.
func Activity[C handler.Context](recorder *activity.Recorder) handler.Middleware[C] {
	return ActivityWithConfig[C](ActivityConfig[C]{Recorder: recorder})
}

// ActivityWithConfig creates the activity middleware with custom
// configuration.
func ActivityWithConfig[C handler.Context](cfg ActivityConfig[C]) handler.Middleware[C] {
	if cfg.Recorder == nil {
		panic("middleware: activity recorder is required")
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			resp := next(ctx)

			cfg.Recorder.Record(ctx.Request().Context(), GetPrincipal(ctx))

			return resp
		}
	}
}
