package model

import (
	"time"
)

// A Session represents a database record.
// Its identifier is the opaque value delivered to the browser through the
// `session` cookie.
type Session struct {
	ID        string    `json:"id"         msgpack:"id"         storm:"id"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
	ExpiresAt time.Time `json:"expires_at" msgpack:"expires_at" storm:"index"`
}

// Expired returns true if the session is no longer usable at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
