package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hotelrm/go-ota-backend/internal/domain"
	"github.com/hotelrm/go-ota-backend/internal/session"
	"github.com/hotelrm/go-ota-backend/internal/store"
)

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	sessions := session.NewMemoryStore(0)
	t.Cleanup(sessions.Stop)
	return &AuthService{
		Store:      store.NewMemoryStore(),
		Sessions:   sessions,
		TTL:        time.Hour,
		BcryptCost: bcrypt.MinCost, // keep hashing cheap in tests
	}
}

func TestRegisterHashesPasswordAndOpensSession(t *testing.T) {
	a := newAuth(t)
	ctx := context.Background()

	u, token, err := a.Register(ctx, domain.NewUser{Username: "alice", Password: "pw123", Hotel: "星星酒店集团"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("no session token issued")
	}
	if u.Role != "user" {
		t.Fatalf("default role = %q, want user", u.Role)
	}
	if u.Password == "pw123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("pw123")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	got, err := a.CurrentUser(ctx, token)
	if err != nil || got.ID != u.ID {
		t.Fatalf("token does not resolve to the registered user: %v %+v", err, got)
	}
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	a := newAuth(t)
	ctx := context.Background()

	if _, _, err := a.Register(ctx, domain.NewUser{Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := a.Register(ctx, domain.NewUser{Username: "alice", Password: "other"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	a := newAuth(t)
	_, _, err := a.Register(context.Background(), domain.NewUser{Username: "alice"})
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	a := newAuth(t)
	ctx := context.Background()
	if _, _, err := a.Register(ctx, domain.NewUser{Username: "alice", Password: "right"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, token, err := a.Login(ctx, "alice", "right")
	if err != nil || token == "" || u.Username != "alice" {
		t.Fatalf("login: %v %q %+v", err, token, u)
	}

	// Wrong password and unknown username yield the same error.
	if _, _, err := a.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := a.Login(ctx, "nobody", "right"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	a := newAuth(t)
	ctx := context.Background()
	_, token, err := a.Register(ctx, domain.NewUser{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := a.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := a.CurrentUser(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("token still valid after logout: %v", err)
	}

	// Logout of an unknown or empty token is a no-op.
	if err := a.Logout(ctx, token); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if err := a.Logout(ctx, ""); err != nil {
		t.Fatalf("empty-token logout: %v", err)
	}
}

func TestCurrentUserUnknownToken(t *testing.T) {
	a := newAuth(t)
	if _, err := a.CurrentUser(context.Background(), "no-such-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := a.CurrentUser(context.Background(), ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty token, got %v", err)
	}
}
