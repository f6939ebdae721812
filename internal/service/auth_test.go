package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/honkaku-tattoo/backend/internal/model"
)

type fakeAuthStore struct {
	users    map[string]*model.User
	sessions map[string]model.Session
	down     bool
}

func newFakeAuthStore() *fakeAuthStore {
	return &fakeAuthStore{
		users:    make(map[string]*model.User),
		sessions: make(map[string]model.Session),
	}
}

func (f *fakeAuthStore) addUser(email, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{ID: int64(len(f.users) + 1), Email: email, PasswordHash: string(hash)}
	f.users[email] = user
	return user
}

func (f *fakeAuthStore) UpsertAdmin(ctx context.Context, email, passwordHash, name string) error {
	if f.down {
		return errors.New("connection refused")
	}
	f.users[email] = &model.User{ID: int64(len(f.users) + 1), Email: email, PasswordHash: passwordHash}
	return nil
}

func (f *fakeAuthStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.down {
		return nil, errors.New("connection refused")
	}
	user, ok := f.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeAuthStore) InsertSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if f.down {
		return errors.New("connection refused")
	}
	f.sessions[token] = model.Session{UserID: userID, Token: token, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeAuthStore) GetSessionUser(ctx context.Context, token string, now time.Time) (*model.AdminUser, error) {
	if f.down {
		return nil, errors.New("connection refused")
	}
	session, ok := f.sessions[token]
	if !ok || !session.ExpiresAt.After(now) {
		return nil, pgx.ErrNoRows
	}
	for _, user := range f.users {
		if user.ID == session.UserID {
			return &model.AdminUser{ID: user.ID, Email: user.Email, Name: user.Name}, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAuthStore) DeleteSessionsByToken(ctx context.Context, token string) error {
	if f.down {
		return errors.New("connection refused")
	}
	delete(f.sessions, token)
	return nil
}

func TestLoginIssuesDistinctTokens(t *testing.T) {
	store := newFakeAuthStore()
	store.addUser("admin@studio.test", "hunter2pass")
	svc := NewAuthService(store, "")

	first, err := svc.Login(context.Background(), "admin@studio.test", "hunter2pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	second, err := svc.Login(context.Background(), "Admin@Studio.Test ", "hunter2pass")
	if err != nil {
		t.Fatalf("login with unnormalized email: %v", err)
	}
	if first == second {
		t.Fatalf("two logins produced the same token")
	}
	if len(store.sessions) != 2 {
		t.Fatalf("expected 2 session rows, got %d", len(store.sessions))
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := newFakeAuthStore()
	store.addUser("admin@studio.test", "hunter2pass")
	svc := NewAuthService(store, "")

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@studio.test", "nope"},
		{"unknown email", "nobody@studio.test", "hunter2pass"},
		{"empty password", "admin@studio.test", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
	if len(store.sessions) != 0 {
		t.Fatalf("failed logins must not create sessions, got %d", len(store.sessions))
	}
}

func TestLoginStoreDownIsNotInvalidCredentials(t *testing.T) {
	store := newFakeAuthStore()
	store.addUser("admin@studio.test", "hunter2pass")
	store.down = true
	svc := NewAuthService(store, "")

	_, err := svc.Login(context.Background(), "admin@studio.test", "hunter2pass")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("store failure must not look like bad credentials")
	}
}

func TestGetSessionLifecycle(t *testing.T) {
	store := newFakeAuthStore()
	store.addUser("admin@studio.test", "hunter2pass")
	svc := NewAuthService(store, "")

	token, err := svc.Login(context.Background(), "admin@studio.test", "hunter2pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := svc.GetSession(context.Background(), token)
	if err != nil || user == nil {
		t.Fatalf("fresh session should resolve, got user=%v err=%v", user, err)
	}
	if user.Email != "admin@studio.test" {
		t.Fatalf("email = %q", user.Email)
	}

	if user, _ := svc.GetSession(context.Background(), "not-a-token"); user != nil {
		t.Fatalf("unknown token should be absent")
	}
	if user, _ := svc.GetSession(context.Background(), ""); user != nil {
		t.Fatalf("empty token should be absent")
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if user, _ := svc.GetSession(context.Background(), token); user != nil {
		t.Fatalf("revoked session should be absent")
	}
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout must be idempotent, got %v", err)
	}
	if err := svc.Logout(context.Background(), "never-existed"); err != nil {
		t.Fatalf("logout of unknown token must not error, got %v", err)
	}
}

func TestGetSessionExpiry(t *testing.T) {
	store := newFakeAuthStore()
	store.addUser("admin@studio.test", "hunter2pass")
	svc := NewAuthService(store, "")

	base := time.Unix(1700000000, 0)
	svc.now = func() time.Time { return base }

	token, err := svc.Login(context.Background(), "admin@studio.test", "hunter2pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.now = func() time.Time { return base.Add(7*24*time.Hour - time.Second) }
	if user, _ := svc.GetSession(context.Background(), token); user == nil {
		t.Fatalf("session should still be valid just before expiry")
	}

	svc.now = func() time.Time { return base.Add(7 * 24 * time.Hour) }
	if user, _ := svc.GetSession(context.Background(), token); user != nil {
		t.Fatalf("session should be absent once expired")
	}
}

func TestEnsureAdmin(t *testing.T) {
	store := newFakeAuthStore()
	svc := NewAuthService(store, "")

	seeded, err := svc.EnsureAdmin(context.Background(), "", "")
	if err != nil || seeded {
		t.Fatalf("missing env pair should skip, got seeded=%v err=%v", seeded, err)
	}

	seeded, err = svc.EnsureAdmin(context.Background(), " Admin@Studio.Test ", "changeme123")
	if err != nil || !seeded {
		t.Fatalf("bootstrap failed: seeded=%v err=%v", seeded, err)
	}
	if _, ok := store.users["admin@studio.test"]; !ok {
		t.Fatalf("email should be stored lower-cased")
	}
}
