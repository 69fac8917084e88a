package identity

import "github.com/google/uuid"

// Principal is the resolved identity attached to a request: either an
// authenticated user or the anonymous principal. Anonymous is a concrete
// value, not the absence of one, so downstream components always have a
// principal to inspect.
//
// Within a single request a principal only ever moves from authenticated to
// anonymous (ban, explicit logout, idle timeout), never the reverse.
type Principal struct {
	// ID identifies the authenticated user (uuid.Nil for anonymous).
	ID       uuid.UUID
	Username string

	// Staff marks elevated principals, which are exempt from ban checks.
	Staff bool

	// Hidden hides the user from the public online list. It only affects
	// frontend display of presence records.
	Hidden bool
}

// Anonymous returns the anonymous principal.
func Anonymous() Principal {
	return Principal{}
}

// IsAuthenticated returns true if the principal identifies a user.
func (p Principal) IsAuthenticated() bool {
	return p.ID != uuid.Nil
}

// IsAnonymous returns true if the principal is the anonymous principal.
func (p Principal) IsAnonymous() bool {
	return !p.IsAuthenticated()
}

// String returns a log-friendly identifier.
func (p Principal) String() string {
	if p.IsAnonymous() {
		return "anonymous"
	}
	if p.Username != "" {
		return p.Username
	}
	return p.ID.String()
}
