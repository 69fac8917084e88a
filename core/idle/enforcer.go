package idle

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/forumkit/core/session"
)

// DefaultThreshold is how long an authenticated session may go without a
// request before it is logged out.
const DefaultThreshold = 90 * time.Second

// Enforcer applies the idle-timeout policy to a session after each request.
// Authenticated sessions carry a last-request stamp in their values; when the
// time since that stamp exceeds the threshold the session is logged out with
// the auto-logout flag set.
type Enforcer struct {
	threshold time.Duration
	clock     func() time.Time
	logger    *slog.Logger
}

// EnforcerOption configures an Enforcer.
type EnforcerOption func(*Enforcer)

// WithThreshold overrides the idle threshold. Non-positive values are
// ignored.
func WithThreshold(d time.Duration) EnforcerOption {
	return func(e *Enforcer) {
		if d > 0 {
			e.threshold = d
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(clock func() time.Time) EnforcerOption {
	return func(e *Enforcer) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLogger sets the logger used for enforcement decisions.
func WithLogger(logger *slog.Logger) EnforcerOption {
	return func(e *Enforcer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEnforcer creates an idle-timeout enforcer with the default 90 second
// threshold.
func NewEnforcer(opts ...EnforcerOption) *Enforcer {
	e := &Enforcer{
		threshold: DefaultThreshold,
		clock:     time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enforce checks the session's last-request stamp and returns true when it
// forced a logout. Authenticated sessions always leave with a fresh stamp;
// anonymous sessions have any stale stamp removed. A stamp that fails to
// parse is replaced rather than treated as idle, so a corrupt value can
// never lock a user out.
func (e *Enforcer) Enforce(ctx context.Context, sess *session.Session) bool {
	if sess == nil {
		return false
	}

	if !sess.IsAuthenticated() {
		sess.DeleteValue(KeyLastRequest)
		return false
	}

	forced := false
	if raw, ok := sess.Value(KeyLastRequest); ok {
		last, err := ParseTimestamp(raw)
		if err != nil {
			e.logger.WarnContext(ctx, "replacing unparseable last-request stamp",
				slog.String("user_id", sess.UserID.String()),
				slog.String("value", raw))
		} else if elapsed := e.clock().Sub(last); elapsed > e.threshold {
			e.logger.InfoContext(ctx, "idle timeout reached, logging user out",
				slog.String("user_id", sess.UserID.String()),
				slog.Duration("elapsed", elapsed))
			sess.DeleteValue(KeyLastRequest)
			sess.SetValue(KeyAutoLogout, "true")
			sess.Logout()
			forced = true
		}
	}

	sess.SetValue(KeyLastRequest, FormatTimestamp(e.clock()))
	return forced
}
