package middleware

import (
	"github.com/dmitrymomot/forumkit/core/handler"
	"github.com/dmitrymomot/forumkit/core/presence"
)

// presenceRecordContextKey is used as a key for storing the presence handle
// in request context.
type presenceRecordContextKey struct{}

// PresenceConfig configures the online presence middleware.
type PresenceConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Tracker maintains the online records
	Tracker *presence.Tracker
}

// Presence creates middleware that keeps the online-user registry in sync
// with request traffic. Before the handler runs, an authenticated principal
// gets a presence record fetched or started and stashed in the context. After
// the response is computed the record is refreshed, or removed when the
// principal was signed out during the request.
//
// All tracking is best effort: failures are logged by the tracker and never
// affect the response.
func Presence[C handler.Context](tracker *presence.Tracker) handler.Middleware[C] {
	return PresenceWithConfig[C](PresenceConfig[C]{Tracker: tracker})
}

// PresenceWithConfig creates the presence middleware with custom
// configuration.
func PresenceWithConfig[C handler.Context](cfg PresenceConfig[C]) handler.Middleware[C] {
	if cfg.Tracker == nil {
		panic("middleware: presence tracker is required")
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			stdCtx := ctx.Request().Context()

			// The marker is always written, so a request never observes a
			// handle left over from other state.
			ctx.SetValue(presenceRecordContextKey{}, nil)

			if p := GetPrincipal(ctx); p.IsAuthenticated() {
				if rec, err := cfg.Tracker.Track(stdCtx, p); err == nil {
					ctx.SetValue(presenceRecordContextKey{}, rec)
				}
			}

			resp := next(ctx)

			if rec, ok := GetPresenceRecord(ctx); ok {
				if GetPrincipal(ctx).IsAuthenticated() {
					cfg.Tracker.UpdateTracker(stdCtx, rec)
				} else {
					cfg.Tracker.StopTracking(stdCtx, rec)
				}
			}

			return resp
		}
	}
}

// GetPresenceRecord retrieves the presence handle stashed for this request.
// Returns false for anonymous requests and requests where tracking failed.
func GetPresenceRecord(ctx handler.Context) (presence.Record, bool) {
	rec, ok := ctx.Value(presenceRecordContextKey{}).(presence.Record)
	return rec, ok
}
