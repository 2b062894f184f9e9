package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/altmart/gocart/internal/domain"
	"github.com/altmart/gocart/internal/port"
)

// sessionRecord is the persisted shape of a session.
type sessionRecord struct {
	LocalID      string    `json:"localId"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	IDToken      string    `json:"idToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (f *Firebase) saveSession(ctx context.Context, session domain.Session) error {
	data, err := json.Marshal(sessionRecord{
		LocalID:      session.User.LocalID,
		Email:        session.User.Email,
		DisplayName:  session.User.DisplayName,
		IDToken:      session.IDToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := f.storage.Set(ctx, SessionKey, data); err != nil {
		return fmt.Errorf("storage.Set: %w", err)
	}

	return nil
}

func (f *Firebase) loadSession(ctx context.Context) (domain.Session, error) {
	data, err := f.storage.Get(ctx, SessionKey)
	if errors.Is(err, port.ErrKeyNotFound) {
		return domain.Session{}, port.ErrNotSignedIn
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("storage.Get: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// corrupt session is the same as no session
		f.log.Warnw("session record malformed, treating as signed out", "error", err)
		return domain.Session{}, port.ErrNotSignedIn
	}

	return domain.Session{
		User: domain.User{
			LocalID:     rec.LocalID,
			Email:       rec.Email,
			DisplayName: rec.DisplayName,
		},
		IDToken:      rec.IDToken,
		RefreshToken: rec.RefreshToken,
		ExpiresAt:    rec.ExpiresAt,
	}, nil
}

// tokenClaims are the display claims carried by the provider's ID token.
type tokenClaims struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// decodeClaims reads the claims without verifying the signature. The token
// arrived from the issuer over TLS and is only used locally for display and
// expiry; it is never presented as proof to anything.
func decodeClaims(idToken string) tokenClaims {
	if idToken == "" {
		return tokenClaims{}
	}

	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, &claims); err != nil {
		return tokenClaims{}
	}

	return claims
}
