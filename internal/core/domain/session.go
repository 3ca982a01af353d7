package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session. User is the SessionUser projection
// persisted with the session row; it is mutated on profile update and written
// back by the boundary in an explicit commit step.
type Session struct {
	ID        string
	User      SessionUser
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewSession mints a session for the given user projection with a random ID.
func NewSession(user SessionUser, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		User:      user,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
