package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/honkaku-tattoo/backend/internal/db"
	"github.com/honkaku-tattoo/backend/internal/model"
)

const (
	sessionCookieName = "admin_session"
	sessionTTL        = 7 * 24 * time.Hour
	bcryptCost        = 12
)

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	SameSite http.SameSite
	MaxAge   int
}

// AuthStore is the credential-store contract: user lookup by lower-cased
// email, session insert, non-expired session lookup joined to its user,
// and session delete by token.
type AuthStore interface {
	UpsertAdmin(ctx context.Context, email, passwordHash, name string) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	InsertSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetSessionUser(ctx context.Context, token string, now time.Time) (*model.AdminUser, error)
	DeleteSessionsByToken(ctx context.Context, token string) error
}

type AuthService struct {
	store     AuthStore
	cookieCfg CookieConfig
	now       func() time.Time
}

func NewAuthService(store AuthStore, cookieDomain string) *AuthService {
	return &AuthService{
		store: store,
		cookieCfg: CookieConfig{
			Name:     sessionCookieName,
			Path:     "/",
			Domain:   cookieDomain,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(sessionTTL.Seconds()),
		},
		now: time.Now,
	}
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

// EnsureAdmin seeds or refreshes the bootstrap user from environment
// credentials. A missing pair is a skip, not an error; it is never part
// of request-time behavior.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return false, err
	}

	if err := s.store.UpsertAdmin(ctx, email, string(hash), "Studio Admin"); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

// Login verifies the credential pair and issues a fresh session token.
// A missing user and a wrong password are indistinguishable to the
// caller; store failures surface as ErrUnavailable instead.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.store.InsertSession(ctx, user.ID, token, s.now().Add(sessionTTL)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return token, nil
}

// GetSession resolves a bearer token to its user. Absent, unknown and
// expired tokens all come back as (nil, nil); expiry is fixed at login,
// never extended here.
func (s *AuthService) GetSession(ctx context.Context, token string) (*model.AdminUser, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}

	user, err := s.store.GetSessionUser(ctx, token, s.now())
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return user, nil
}

// Logout revokes every session row carrying the token. Unknown tokens
// are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := s.store.DeleteSessionsByToken(ctx, token); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
