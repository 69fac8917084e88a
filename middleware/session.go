package middleware

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/forumkit/core/handler"
	"github.com/dmitrymomot/forumkit/core/session"
	"github.com/dmitrymomot/forumkit/pkg/clientip"
)

// DefaultSessionCookie is the cookie name used when none is configured.
const DefaultSessionCookie = "forum_session"

// sessionContextKey is used as a key for storing the session in request context.
type sessionContextKey struct{}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Manager handles session loading and persistence
	Manager *session.Manager
	// CookieName is the session token cookie (default: "forum_session")
	CookieName string
	// CookiePath restricts the cookie path (default: "/")
	CookiePath string
	// CookieSecure marks the cookie as HTTPS-only
	CookieSecure bool
	// Logger for structured logging (default: slog with io.Discard)
	Logger *slog.Logger
	// ErrorHandler defines the response when persisting the session fails.
	// Default: plain 500.
	ErrorHandler func(ctx C, err error) handler.Response
}

// Session creates middleware that loads the session before the handler runs,
// stores it in the request context, and persists it after the response is
// computed.
//
// The middleware:
//   - Reads the session token from the cookie and loads the session
//     (load errors are logged; the request continues with a fresh session)
//   - Captures client IP and User-Agent for new sessions
//   - Stores a mutable *session.Session in the request context
//   - Persists the session after the handler, honoring deletion and
//     modification state
//   - Refreshes the cookie on token rotation and clears it on logout
func Session[C handler.Context](manager *session.Manager) handler.Middleware[C] {
	return SessionWithConfig[C](SessionConfig[C]{Manager: manager})
}

// SessionWithConfig creates the session middleware with custom configuration.
func SessionWithConfig[C handler.Context](cfg SessionConfig[C]) handler.Middleware[C] {
	if cfg.Manager == nil {
		panic("middleware: session manager is required")
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultSessionCookie
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx C, err error) handler.Response {
			return func(w http.ResponseWriter, r *http.Request) error {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return nil
			}
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			r := ctx.Request()

			var token string
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				token = cookie.Value
			}

			ip, ok := GetRealIP(ctx)
			if !ok {
				ip = clientip.GetIP(r)
			}
			params := session.NewSessionParams{IP: ip, UserAgent: r.UserAgent()}

			sess, err := cfg.Manager.Load(r.Context(), token, params)
			if err != nil {
				cfg.Logger.ErrorContext(r.Context(), "failed to load session, starting fresh",
					slog.Any("error", err))
				sess, err = session.New(params, cfg.Manager.GetTTL())
				if err != nil {
					return cfg.ErrorHandler(ctx, err)
				}
			}

			ctx.SetValue(sessionContextKey{}, &sess)

			resp := next(ctx)

			if err := cfg.Manager.Store(r.Context(), sess); err != nil {
				cfg.Logger.ErrorContext(r.Context(), "failed to persist session",
					slog.String("session_id", sess.ID.String()),
					slog.Any("error", err))
				return cfg.ErrorHandler(ctx, err)
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				switch {
				case sess.IsDeleted():
					http.SetCookie(w, &http.Cookie{
						Name:     cfg.CookieName,
						Value:    "",
						Path:     cfg.CookiePath,
						MaxAge:   -1,
						HttpOnly: true,
						Secure:   cfg.CookieSecure,
						SameSite: http.SameSiteLaxMode,
					})
				case sess.Token != token:
					http.SetCookie(w, &http.Cookie{
						Name:     cfg.CookieName,
						Value:    sess.Token,
						Path:     cfg.CookiePath,
						Expires:  sess.ExpiresAt,
						HttpOnly: true,
						Secure:   cfg.CookieSecure,
						SameSite: http.SameSiteLaxMode,
					})
				}
				return resp(w, r)
			}
		}
	}
}

// GetSession retrieves the session from the request context. The returned
// pointer is shared across the middleware chain, so mutations (logout, value
// changes) are visible to later middleware and to the persistence step.
func GetSession(ctx handler.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess, ok
}
