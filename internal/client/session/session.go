package session

import (
	"slices"
	"time"
)

// Session is an authenticated identity. Values handed out by Store are
// copies.
type Session struct {
	Token       string
	UserID      int64
	Email       string
	Roles       []string
	TokenExpiry time.Time
	// ServerExpiry is the token's own "exp" claim, zero when absent.
	ServerExpiry time.Time
}

func (s *Session) HasRole(role string) bool {
	if s == nil {
		return false
	}
	return slices.Contains(s.Roles, role)
}

// Expired reports whether the client-side expiry is at or before now.
func (s *Session) Expired(now time.Time) bool {
	return !s.TokenExpiry.After(now)
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Roles = slices.Clone(s.Roles)
	return &c
}
