package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/altmart/gocart/internal/domain"
	"github.com/altmart/gocart/internal/port"
)

const (
	DefaultIdentityURL = "https://identitytoolkit.googleapis.com"
	DefaultTokenURL    = "https://securetoken.googleapis.com"
)

// SessionKey is the durable-storage slot holding the signed-in session.
const SessionKey = "session"

// Firebase speaks the Identity Toolkit REST API, the same one the provider's
// browser SDK uses for email/password accounts. The resulting session is
// kept in local storage so sign-in survives restarts.
type Firebase struct {
	apiKey      string
	identityURL string
	tokenURL    string
	http        *http.Client
	storage     port.Storage
	log         *zap.SugaredLogger

	now func() time.Time
}

var _ port.Authenticator = (*Firebase)(nil)

func NewFirebase(apiKey string, storage port.Storage, log *zap.SugaredLogger) *Firebase {
	return &Firebase{
		apiKey:      apiKey,
		identityURL: DefaultIdentityURL,
		tokenURL:    DefaultTokenURL,
		http:        &http.Client{Timeout: 15 * time.Second},
		storage:     storage,
		log:         log,
		now:         time.Now,
	}
}

func (f *Firebase) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	resp, err := f.call(ctx, f.identityURL+"/v1/accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return domain.Session{}, err
	}

	session := f.toSession(resp)
	if err := f.saveSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("saveSession: %w", err)
	}

	f.log.Infow("signed in", "email", email)
	return session, nil
}

func (f *Firebase) SignUp(ctx context.Context, email, password, displayName string) (domain.Session, error) {
	resp, err := f.call(ctx, f.identityURL+"/v1/accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return domain.Session{}, err
	}

	if displayName != "" {
		updated, err := f.call(ctx, f.identityURL+"/v1/accounts:update", map[string]any{
			"idToken":           resp.IDToken,
			"displayName":       displayName,
			"returnSecureToken": false,
		})
		if err != nil {
			// account exists, name is cosmetic
			f.log.Warnw("display name update failed", "error", err)
		} else {
			resp.DisplayName = updated.DisplayName
		}
	}

	session := f.toSession(resp)
	if err := f.saveSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("saveSession: %w", err)
	}

	f.log.Infow("account created", "email", email)
	return session, nil
}

func (f *Firebase) SignOut(ctx context.Context) error {
	if err := f.storage.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("storage.Delete: %w", err)
	}
	return nil
}

// CurrentUser returns the locally known identity. An expired ID token is
// refreshed through the token endpoint first; failing that, the caller is
// treated as signed out.
func (f *Firebase) CurrentUser(ctx context.Context) (domain.User, error) {
	session, err := f.loadSession(ctx)
	if err != nil {
		return domain.User{}, err
	}

	if session.Expired(f.now()) {
		session, err = f.refresh(ctx, session)
		if err != nil {
			f.log.Debugw("session refresh failed", "error", err)
			return domain.User{}, port.ErrNotSignedIn
		}
	}

	return session.User, nil
}

func (f *Firebase) refresh(ctx context.Context, session domain.Session) (domain.Session, error) {
	if session.RefreshToken == "" {
		return domain.Session{}, fmt.Errorf("no refresh token")
	}

	body, err := json.Marshal(map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": session.RefreshToken,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("json.Marshal: %w", err)
	}

	resp, err := f.post(ctx, f.tokenURL+"/v1/token", body)
	if err != nil {
		return domain.Session{}, err
	}

	var tr struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
	}
	if err := json.Unmarshal(resp, &tr); err != nil {
		return domain.Session{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	session.IDToken = tr.IDToken
	session.RefreshToken = tr.RefreshToken
	session.ExpiresAt = f.now().Add(expirySeconds(tr.ExpiresIn))

	if err := f.saveSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("saveSession: %w", err)
	}

	return session, nil
}

// accountResponse is the shared shape of the sign-in/sign-up/update replies.
type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

func (f *Firebase) toSession(resp accountResponse) domain.Session {
	user := domain.User{
		LocalID:     resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
	}

	// The reply carries everything we need; token claims fill any gaps.
	claims := decodeClaims(resp.IDToken)
	if user.Email == "" {
		user.Email = claims.Email
	}
	if user.DisplayName == "" {
		user.DisplayName = claims.Name
	}
	if user.LocalID == "" {
		user.LocalID = claims.UserID
	}

	return domain.Session{
		User:         user,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    f.now().Add(expirySeconds(resp.ExpiresIn)),
	}
}

func (f *Firebase) call(ctx context.Context, url string, payload map[string]any) (accountResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return accountResponse{}, fmt.Errorf("json.Marshal: %w", err)
	}

	resp, err := f.post(ctx, url, body)
	if err != nil {
		return accountResponse{}, err
	}

	var account accountResponse
	if err := json.Unmarshal(resp, &account); err != nil {
		return accountResponse{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return account, nil
}

func (f *Firebase) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"?key="+f.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, mapAPIError(buf.Bytes(), resp.Status)
	}

	return buf.Bytes(), nil
}

// mapAPIError translates the provider's error codes into the sentinel errors
// consumers show to the visitor.
func mapAPIError(body []byte, status string) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error.Message == "" {
		return fmt.Errorf("identity api: status %s", status)
	}

	code, _, _ := strings.Cut(payload.Error.Message, " ")
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return port.ErrInvalidCredentials
	case "EMAIL_EXISTS":
		return port.ErrEmailTaken
	case "WEAK_PASSWORD":
		return port.ErrWeakPassword
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return port.ErrTooManyAttempts
	default:
		return fmt.Errorf("identity api: %s", payload.Error.Message)
	}
}

func expirySeconds(s string) time.Duration {
	secs, err := strconv.Atoi(s)
	if err != nil || secs <= 0 {
		secs = 3600
	}
	return time.Duration(secs) * time.Second
}
