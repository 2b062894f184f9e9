package domain

import "time"

// User is the authenticated identity as known locally.
type User struct {
	LocalID     string
	Email       string
	DisplayName string
}

// Session is the persisted sign-in state. ExpiresAt is when the ID token
// stops being valid; the refresh token is kept for a future refresh flow.
type Session struct {
	User         User
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
