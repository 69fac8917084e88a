package middleware

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/forumkit/core/handler"
	"github.com/dmitrymomot/forumkit/core/identity"
	"github.com/dmitrymomot/forumkit/core/presence"
	"github.com/dmitrymomot/forumkit/pkg/clientip"
)

// principalContextKey is used as a key for storing the effective principal in
// request context.
type principalContextKey struct{}

// IdentityConfig configures the identity resolution middleware.
type IdentityConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Gate applies ban checks to the raw principal
	Gate *identity.Gate
	// Users resolves the session's user reference to a principal
	Users identity.UserSource
	// CacheVersions supplies ban cache version tags for the request
	// (optional)
	CacheVersions func(ctx C) map[string]string
	// Tracker, when set, has the banned user's presence record removed on a
	// forced logout (optional)
	Tracker *presence.Tracker
	// Logger for structured logging (default: slog with io.Discard)
	Logger *slog.Logger
}

// Identity creates middleware that resolves the request's effective
// principal. The session's user reference is looked up, the ban gate is
// applied, and the result is stored in the request context. A gate-forced
// logout invalidates the in-context session and leaves the request
// anonymous.
func Identity[C handler.Context](gate *identity.Gate, users identity.UserSource) handler.Middleware[C] {
	return IdentityWithConfig[C](IdentityConfig[C]{Gate: gate, Users: users})
}

// IdentityWithConfig creates the identity middleware with custom
// configuration.
func IdentityWithConfig[C handler.Context](cfg IdentityConfig[C]) handler.Middleware[C] {
	if cfg.Gate == nil || cfg.Users == nil {
		panic("middleware: identity gate and user source are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			stdCtx := ctx.Request().Context()

			raw := identity.Anonymous()
			sess, hasSession := GetSession(ctx)
			if hasSession && sess.IsAuthenticated() {
				user, err := cfg.Users.UserByID(stdCtx, sess.UserID)
				switch {
				case err == nil:
					raw = user
				case errors.Is(err, identity.ErrUserNotFound):
					// Stale session reference, treated as signed out.
				default:
					cfg.Logger.ErrorContext(stdCtx, "failed to resolve session user",
						slog.String("user_id", sess.UserID.String()),
						slog.Any("error", err))
				}
			}

			ip, ok := GetRealIP(ctx)
			if !ok {
				ip = clientip.GetIP(ctx.Request())
			}

			var cacheVersions map[string]string
			if cfg.CacheVersions != nil {
				cacheVersions = cfg.CacheVersions(ctx)
			}

			decision := cfg.Gate.Resolve(stdCtx, raw, ip, cacheVersions)

			if decision.ForcedLogout {
				if hasSession {
					sess.Logout()
				}
				if cfg.Tracker != nil {
					cfg.Tracker.StopTracking(stdCtx, presence.Record{UserID: raw.ID})
				}
			}

			ctx.SetValue(principalContextKey{}, decision.Principal)
			return next(ctx)
		}
	}
}

// SetPrincipal replaces the effective principal for the remainder of the
// request. Login and logout endpoints use it so middleware running after the
// handler observes the new identity.
func SetPrincipal(ctx handler.Context, p identity.Principal) {
	ctx.SetValue(principalContextKey{}, p)
}

// GetPrincipal retrieves the effective principal from the request context.
// Returns the anonymous principal when identity resolution has not run.
func GetPrincipal(ctx handler.Context) identity.Principal {
	if p, ok := ctx.Value(principalContextKey{}).(identity.Principal); ok {
		return p
	}
	return identity.Anonymous()
}
