// Authentication HTTP handlers.
//
// This file exposes the session lifecycle endpoints:
//   - POST /auth/register  (create account, open session)
//   - POST /auth/login     (verify credentials, open session)
//   - POST /auth/logout    (end session)
//   - GET  /auth/me        (current identity)
//
// The session token travels in an HttpOnly cookie; a Bearer token in the
// Authorization header is accepted as an alternative for non-browser clients.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
	"github.com/hotelrm/go-ota-backend/internal/services"
)

// SessionCookie is the cookie name carrying the session token.
const SessionCookie = "session_token"

// LoginRequest is the JSON payload for logging in.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// AuthResponse wraps the authenticated user and the session token. The token
// is also set as a cookie; it is included in the body for API clients.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// SessionToken extracts the session token from the request: cookie first, then
// "Authorization: Bearer". Empty string when absent.
func SessionToken(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func (h *Handlers) setSessionCookie(c *gin.Context, token string) {
	maxAge := 0
	if h.auth.TTL > 0 {
		maxAge = int(h.auth.TTL.Seconds())
	}
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
}

// Register godoc
// @ID          register
// @Summary     Register a new user
// @Description Creates a user account, opens a session, and sets the session cookie.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.NewUser  true  "Registration payload"
//
// @Success     201  {object}  handlers.AuthResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Username taken"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var in domain.NewUser
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, token, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			fail(c, http.StatusConflict, ErrCodeUsernameTaken, err.Error())
		case errors.Is(err, domain.ErrMissingField):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	h.setSessionCookie(c, token)
	ok(c, http.StatusCreated, AuthResponse{User: u, Token: token})
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies the credential pair, opens a session, and sets the session cookie.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.AuthResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and password required")
		return
	}

	u, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	h.setSessionCookie(c, token)
	ok(c, http.StatusOK, AuthResponse{User: u, Token: token})
}

// Logout godoc
// @ID          logout
// @Summary     Log out
// @Description Ends the current session and clears the session cookie. Idempotent.
// @Tags        Auth
// @Produce     json
//
// @Success     204  {string}  string  "No Content"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), SessionToken(c)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	noContent(c)
}

// Me godoc
// @ID          me
// @Summary     Current user
// @Description Returns the user bound to the session token.
// @Tags        Auth
// @Produce     json
//
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	u, okUser := currentUser(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	ok(c, http.StatusOK, u)
}
