// Package session provides the token store behind cookie authentication.
// A session maps an opaque token to a user id for a bounded lifetime.
// Tokens are random UUIDs minted at login; the store never inspects them.
package session

import (
	"context"
	"time"
)

// Store persists login sessions. Implementations are safe for concurrent use.
type Store interface {
	// Set records token -> userID for ttl. ttl <= 0 means no expiry.
	Set(ctx context.Context, token string, userID int64, ttl time.Duration) error

	// Get resolves a token. found is false for unknown or expired tokens.
	Get(ctx context.Context, token string) (userID int64, found bool, err error)

	// Delete removes a token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
