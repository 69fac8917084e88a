package identity

import (
	"context"
	"io"
	"log/slog"
)

// Decision is the gate's verdict for a single request.
type Decision struct {
	// Principal is the effective principal for the rest of the request.
	Principal Principal

	// ForcedLogout is true when the session must be invalidated because the
	// incoming principal was demoted by ban policy.
	ForcedLogout bool
}

// Gate resolves the effective principal for a request, demoting banned and
// anonymous principals to the anonymous identity.
type Gate struct {
	bans   BanService
	logger *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGateLogger sets the logger for ban-lookup failures.
func WithGateLogger(logger *slog.Logger) GateOption {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGate creates a gate backed by the given ban service.
func NewGate(bans BanService, opts ...GateOption) *Gate {
	g := &Gate{
		bans:   bans,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Resolve produces the effective principal for the request.
//
// Anonymous principals pass through as anonymous. Staff principals pass
// through unchanged without ban checks. Everyone else is checked against the
// IP ban and user ban predicates; a hit demotes the principal to anonymous
// and flags the session for invalidation. Ban lookups fail open: on error the
// user is treated as not banned for this cycle and the failure is logged.
func (g *Gate) Resolve(ctx context.Context, raw Principal, ip string, cacheVersions map[string]string) Decision {
	if raw.IsAnonymous() {
		return Decision{Principal: Anonymous()}
	}

	if raw.Staff {
		return Decision{Principal: raw}
	}

	if g.banned(ctx, raw, ip, cacheVersions) {
		return Decision{Principal: Anonymous(), ForcedLogout: true}
	}

	return Decision{Principal: raw}
}

func (g *Gate) banned(ctx context.Context, p Principal, ip string, cacheVersions map[string]string) bool {
	ipBanned, err := g.bans.IsIPBanned(ctx, ip)
	if err != nil {
		g.logger.ErrorContext(ctx, "identity gate: ip ban lookup failed", "ip", ip, "error", err)
	} else if ipBanned {
		return true
	}

	userBanned, err := g.bans.IsUserBanned(ctx, p, cacheVersions)
	if err != nil {
		g.logger.ErrorContext(ctx, "identity gate: user ban lookup failed", "user", p.String(), "error", err)
		return false
	}

	return userBanned
}
