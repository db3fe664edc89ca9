// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves session tokens into an authenticated identity. Auth()
// runs on every request and, when the token maps to a live session, stores
// the user under the "user" and "userID" context keys for downstream
// middleware and handlers. RequireAuth() gates protected route groups with a
// 401 envelope when no identity was resolved.
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
)

const (
	ctxKeyUser   = "user"
	ctxKeyUserID = "userID"
)

// IdentityResolver turns a session token into a user. Implemented by
// services.AuthService.
type IdentityResolver interface {
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// TokenFunc extracts the session token from a request; empty when absent.
type TokenFunc func(*gin.Context) string

// Auth resolves the session token and attaches the identity to the context.
// Requests without a valid session pass through anonymously; RequireAuth is
// what rejects them. Resolution failures are treated as anonymous, not as
// server errors, so a stale cookie never blocks public endpoints.
func Auth(resolver IdentityResolver, token TokenFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if t := token(c); t != "" {
			if u, err := resolver.CurrentUser(c.Request.Context(), t); err == nil && u != nil {
				c.Set(ctxKeyUser, u)
				c.Set(ctxKeyUserID, u.ID)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 when Auth did not resolve an identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ctxKeyUser); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "unauthorized",
				"message":    "not authenticated",
			})
			return
		}
		c.Next()
	}
}

// UserIDFrom returns the authenticated user id, or 0 for anonymous requests.
func UserIDFrom(c *gin.Context) int64 {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
