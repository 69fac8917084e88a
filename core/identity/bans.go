package identity

import (
	"context"

	"github.com/google/uuid"
)

// BanService exposes the ban-lookup subsystem as two independent predicates.
// Ban rule evaluation itself lives outside this module; the gate only
// consumes the verdicts.
type BanService interface {
	// IsIPBanned reports whether requests from the given client IP are banned.
	IsIPBanned(ctx context.Context, ip string) (bool, error)

	// IsUserBanned reports whether the user is banned. The cacheVersions
	// token lets implementations key cached verdicts on the caller's cache
	// generation.
	IsUserBanned(ctx context.Context, p Principal, cacheVersions map[string]string) (bool, error)
}

// UserSource resolves the raw principal for an authenticated session.
// The authentication subsystem is an external collaborator; this interface is
// its boundary.
type UserSource interface {
	// UserByID returns the principal for the given user ID, or ErrUserNotFound.
	UserByID(ctx context.Context, id uuid.UUID) (Principal, error)
}
