// Handler wiring shared by all endpoint files.
//
// Handlers are transport-thin: they validate input, call the storage layer or
// the auth service, and translate results into HTTP responses. Every entity
// endpoint requires an authenticated session; the auth middleware resolves the
// session token and stores the user in the Gin context before any handler in
// this package runs.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
	"github.com/hotelrm/go-ota-backend/internal/services"
	"github.com/hotelrm/go-ota-backend/internal/store"
)

// ContextUserKey is the Gin context key under which the auth middleware stores
// the authenticated *domain.User.
const ContextUserKey = "user"

// Handlers groups the HTTP endpoints for every entity plus authentication.
type Handlers struct {
	store store.Store
	auth  *services.AuthService
}

// New constructs a Handlers instance bound to the given store and auth service.
func New(st store.Store, auth *services.AuthService) *Handlers {
	return &Handlers{store: st, auth: auth}
}

// currentUser returns the authenticated user placed in the context by the auth
// middleware. The bool is false when the middleware did not run or rejected
// the request.
func currentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}

// currentUserID is a convenience wrapper over currentUser.
func currentUserID(c *gin.Context) (int64, bool) {
	u, ok := currentUser(c)
	if !ok {
		return 0, false
	}
	return u.ID, true
}

// parseID parses the :id path parameter. On failure it writes a 400 response
// and returns ok=false; the caller must return immediately.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// storeFail maps storage-layer errors onto the response envelope. notFoundMsg
// customizes the 404 message per entity.
func storeFail(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, notFoundMsg)
	case errors.Is(err, store.ErrDuplicate):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrMissingField):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
