// API key HTTP handlers.
//
// REST endpoints for external-service credentials:
//   - GET    /api-keys              (own; ?service= returns the first match)
//   - POST   /api-keys
//   - PUT    /api-keys/{id}
//   - DELETE /api-keys/{id}
//
// Keys arrive already encrypted; this service stores ciphertext only.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
)

// getOwnAPIKey loads a key and checks ownership.
func (h *Handlers) getOwnAPIKey(c *gin.Context, id, uid int64) *domain.APIKey {
	k, err := h.store.GetAPIKey(c.Request.Context(), id)
	if err != nil {
		storeFail(c, err, "api key not found")
		return nil
	}
	if k.UserID != uid {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "api key not found")
		return nil
	}
	return k
}

// ListAPIKeys godoc
// @ID          listAPIKeys
// @Summary     List API keys
// @Description Returns the current user's API keys. With service set, returns the first key for that service.
// @Tags        APIKeys
// @Produce     json
//
// @Param       service  query  string  false  "Filter by service name"  example(deepseek)
//
// @Success     200  {array}   domain.APIKey
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "No key for service"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api-keys [get]
func (h *Handlers) ListAPIKeys(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	if service := c.Query("service"); service != "" {
		k, err := h.store.GetAPIKeyByUserIDAndService(c.Request.Context(), uid, service)
		if err != nil {
			storeFail(c, err, "no api key for service")
			return
		}
		ok(c, http.StatusOK, k)
		return
	}

	items, err := h.store.GetAPIKeysByUserID(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateAPIKey godoc
// @ID          createAPIKey
// @Summary     Store an API key
// @Description Saves an encrypted external-service credential for the current user.
// @Tags        APIKeys
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.NewAPIKey  true  "Key payload"
//
// @Success     201  {object}  domain.APIKey
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api-keys [post]
func (h *Handlers) CreateAPIKey(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	var in domain.NewAPIKey
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	in.UserID = uid

	k, err := h.store.CreateAPIKey(c.Request.Context(), in)
	if err != nil {
		storeFail(c, err, "api key not found")
		return
	}
	ok(c, http.StatusCreated, k)
}

// UpdateAPIKey godoc
// @ID          updateAPIKey
// @Summary     Update an API key
// @Tags        APIKeys
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                  true  "Key ID"
// @Param       body  body  domain.APIKeyPatch  true  "Fields to update"
//
// @Success     200  {object}  domain.APIKey
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Key not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api-keys/{id} [put]
func (h *Handlers) UpdateAPIKey(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	if h.getOwnAPIKey(c, id, uid) == nil {
		return
	}

	var p domain.APIKeyPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	k, err := h.store.UpdateAPIKey(c.Request.Context(), id, p)
	if err != nil {
		storeFail(c, err, "api key not found")
		return
	}
	ok(c, http.StatusOK, k)
}

// DeleteAPIKey godoc
// @ID          deleteAPIKey
// @Summary     Delete an API key
// @Tags        APIKeys
// @Produce     json
//
// @Param       id  path  int  true  "Key ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Key not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api-keys/{id} [delete]
func (h *Handlers) DeleteAPIKey(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	if h.getOwnAPIKey(c, id, uid) == nil {
		return
	}
	if err := h.store.DeleteAPIKey(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
