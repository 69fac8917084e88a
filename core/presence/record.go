package presence

import (
	"time"

	"github.com/google/uuid"
)

// Record marks a single user as currently online. At most one record exists
// per user; it is created on the first authenticated request, refreshed on
// every subsequent one, and deleted when the user goes anonymous.
type Record struct {
	UserID   uuid.UUID `json:"user_id"`
	LastSeen time.Time `json:"last_seen"`

	// Hidden excludes the record from public online listings. It carries the
	// user's privacy preference and has no effect on tracking itself.
	Hidden bool `json:"hidden"`
}
