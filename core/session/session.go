package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session represents a user session with a string-keyed value store.
// The value store carries request-tracking state such as the last-request
// timestamp and the forced-logout flag.
type Session struct {
	// ID is the stable unique session identifier that never changes during
	// the session lifecycle.
	ID uuid.UUID `json:"id"`

	// Token is the cryptographically secure session token (32 bytes
	// base64url), used as the cookie value.
	Token string `json:"token"`

	// UserID identifies the authenticated user (uuid.Nil for anonymous
	// sessions).
	UserID uuid.UUID `json:"user_id"`

	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`

	// Values holds string-keyed session state.
	Values map[string]string `json:"values,omitempty"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletedAt time.Time `json:"deleted_at,omitempty"`

	// isModified tracks if the session needs saving
	isModified bool
}

// NewSessionParams contains parameters for creating a new session.
type NewSessionParams struct {
	IP        string
	UserAgent string
}

// New creates a new anonymous session with a generated token and ID.
// The session is marked as modified and ready to be saved.
func New(params NewSessionParams, ttl time.Duration) (Session, error) {
	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session{
		ID:         uuid.New(),
		Token:      token,
		UserID:     uuid.Nil,
		IP:         params.IP,
		UserAgent:  params.UserAgent,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
		isModified: true,
	}, nil
}

// Authenticate marks the session as belonging to the given user.
// Rotates the session token but preserves the session ID for security.
func (s *Session) Authenticate(userID uuid.UUID) error {
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.UserID = userID
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Logout marks the session for deletion by setting the DeletedAt timestamp.
// A forced logout (ban, idle timeout) and an explicit one are identical at
// this level: the session is invalidated wholesale.
func (s *Session) Logout() {
	s.DeletedAt = time.Now()
	s.isModified = true
}

// Value returns the session value for key.
func (s *Session) Value(key string) (string, bool) {
	val, ok := s.Values[key]
	return val, ok
}

// SetValue stores a session value.
func (s *Session) SetValue(key, value string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[key] = value
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// DeleteValue removes a session value. Deleting a missing key is a no-op and
// does not mark the session modified.
func (s *Session) DeleteValue(key string) {
	if _, ok := s.Values[key]; !ok {
		return
	}
	delete(s.Values, key)
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// Touch extends the session expiration if the touch interval has elapsed.
// This reduces write operations by only updating when sufficient time has passed.
func (s *Session) Touch(ttl, touchInterval time.Duration) {
	if time.Since(s.UpdatedAt) >= touchInterval {
		s.ExpiresAt = time.Now().Add(ttl)
		s.UpdatedAt = time.Now()
		s.isModified = true
	}
}

// IsAuthenticated returns true if the session has a valid user ID and has
// not been invalidated.
func (s Session) IsAuthenticated() bool {
	return s.UserID != uuid.Nil && s.Token != "" && !s.IsDeleted()
}

// IsDeleted returns true if the session is marked for deletion.
func (s Session) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified returns true if the session has been modified and needs saving.
func (s Session) IsModified() bool {
	return s.isModified
}

// IsExpired returns true if the session has expired.
func (s Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// rotateToken generates a new token while preserving the session ID.
func (s *Session) rotateToken() error {
	newToken, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = newToken
	s.isModified = true
	return nil
}

// generateToken creates a cryptographically secure random token using 32 bytes
// (256 bits) encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
