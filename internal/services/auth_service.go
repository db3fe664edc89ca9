// AuthService owns the credential lifecycle: registration with bcrypt
// hashing, login verification, opaque session tokens, and resolving a token
// back to its user. Passwords are verified against the stored hash on every
// login; a mismatch and an unknown username both yield ErrInvalidCredentials
// so the response does not leak which part was wrong.

package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotelrm/go-ota-backend/internal/domain"
	"github.com/hotelrm/go-ota-backend/internal/session"
	"github.com/hotelrm/go-ota-backend/internal/store"
)

// AuthService provides registration, login, logout, and session resolution.
type AuthService struct {
	// Store is the persistence layer for user rows.
	Store store.Store
	// Sessions holds token -> user id mappings.
	Sessions session.Store

	// TTL is the session lifetime granted at login and registration.
	TTL time.Duration
	// BcryptCost overrides the hashing cost; 0 means bcrypt.DefaultCost.
	BcryptCost int
}

func (s *AuthService) cost() int {
	if s.BcryptCost > 0 {
		return s.BcryptCost
	}
	return bcrypt.DefaultCost
}

// Register creates a user with a hashed password and opens a session for it.
// Returns ErrUsernameTaken when the username is already in use.
func (s *AuthService) Register(ctx context.Context, in domain.NewUser) (*domain.User, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", err
	}

	// Advisory pre-check; the unique index is the real guarantee.
	if _, err := s.Store.GetUserByUsername(ctx, in.Username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost())
	if err != nil {
		return nil, "", err
	}
	in.Password = string(hash)
	if in.Role == "" {
		in.Role = "user"
	}

	u, err := s.Store.CreateUser(ctx, in)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies the credential pair and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	u, err := s.Store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout ends the session. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, token)
}

// CurrentUser resolves a session token to its user. The user row is fetched
// fresh so role or profile changes are visible immediately.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	id, ok, err := s.Sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthenticated
	}
	u, err := s.Store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) openSession(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.Sessions.Set(ctx, token, userID, s.TTL); err != nil {
		return "", err
	}
	return token, nil
}
