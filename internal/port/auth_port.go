package port

import (
	"context"
	"errors"

	"github.com/altmart/gocart/internal/domain"
)

var (
	ErrNotSignedIn        = errors.New("not signed in")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrTooManyAttempts    = errors.New("too many failed attempts, try again later")
)

// Authenticator delegates identity to the remote provider and keeps the
// resulting session locally.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	SignUp(ctx context.Context, email, password, displayName string) (domain.Session, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (domain.User, error)
}
