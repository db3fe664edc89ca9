// Promotional activity HTTP handlers.
//
// REST endpoints for campaign rows:
//   - GET    /activities                 (own; ?platform_id= filters by platform)
//   - POST   /activities                 (create; platform must exist and be owned)
//   - GET    /activities/{id}
//   - PUT    /activities/{id}
//   - DELETE /activities/{id}
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
)

// ownsPlatform reports whether platformID is an OTA account of uid. A false
// return has already written the error response.
func (h *Handlers) ownsPlatform(c *gin.Context, platformID, uid int64) bool {
	a, err := h.store.GetOtaAccount(c.Request.Context(), platformID)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidPlatform, "platform_id does not reference an existing account")
		return false
	}
	if a.UserID != uid {
		fail(c, http.StatusBadRequest, ErrCodeInvalidPlatform, "platform_id does not reference an existing account")
		return false
	}
	return true
}

// ListActivities godoc
// @ID          listActivities
// @Summary     List activities
// @Description Returns the current user's activities. With platform_id set, returns the activities of that owned platform instead.
// @Tags        Activities
// @Produce     json
//
// @Param       platform_id  query  int  false  "Filter by OTA account ID"
//
// @Success     200  {array}   domain.Activity
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /activities [get]
func (h *Handlers) ListActivities(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	if raw := c.Query("platform_id"); raw != "" {
		pid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || pid < 1 {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "platform_id must be a positive integer")
			return
		}
		if !h.ownsPlatform(c, pid, uid) {
			return
		}
		items, err := h.store.GetActivitiesByPlatform(c.Request.Context(), pid)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
			return
		}
		ok(c, http.StatusOK, items)
		return
	}

	items, err := h.store.GetActivitiesByUserID(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateActivity godoc
// @ID          createActivity
// @Summary     Create an activity
// @Description Records a promotional activity under one of the user's OTA accounts.
// @Tags        Activities
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.NewActivity  true  "Activity payload"
//
// @Success     201  {object}  domain.Activity
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or unknown platform"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /activities [post]
func (h *Handlers) CreateActivity(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	var in domain.NewActivity
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	in.UserID = &uid

	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if !h.ownsPlatform(c, in.PlatformID, uid) {
		return
	}

	a, err := h.store.CreateActivity(c.Request.Context(), in)
	if err != nil {
		storeFail(c, err, "activity not found")
		return
	}
	ok(c, http.StatusCreated, a)
}

// getOwnActivity loads an activity and checks ownership.
func (h *Handlers) getOwnActivity(c *gin.Context, id, uid int64) *domain.Activity {
	a, err := h.store.GetActivity(c.Request.Context(), id)
	if err != nil {
		storeFail(c, err, "activity not found")
		return nil
	}
	if a.UserID == nil || *a.UserID != uid {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "activity not found")
		return nil
	}
	return a
}

// GetActivity godoc
// @ID          getActivity
// @Summary     Get an activity
// @Tags        Activities
// @Produce     json
//
// @Param       id  path  int  true  "Activity ID"
//
// @Success     200  {object}  domain.Activity
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Activity not found"
// @Router      /activities/{id} [get]
func (h *Handlers) GetActivity(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	a := h.getOwnActivity(c, id, uid)
	if a == nil {
		return
	}
	ok(c, http.StatusOK, a)
}

// UpdateActivity godoc
// @ID          updateActivity
// @Summary     Update an activity
// @Description Merges the supplied fields into the activity. Omitted fields are unchanged.
// @Tags        Activities
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                    true  "Activity ID"
// @Param       body  body  domain.ActivityPatch  true  "Fields to update"
//
// @Success     200  {object}  domain.Activity
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Activity not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /activities/{id} [put]
func (h *Handlers) UpdateActivity(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	if h.getOwnActivity(c, id, uid) == nil {
		return
	}

	var p domain.ActivityPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a, err := h.store.UpdateActivity(c.Request.Context(), id, p)
	if err != nil {
		storeFail(c, err, "activity not found")
		return
	}
	ok(c, http.StatusOK, a)
}

// DeleteActivity godoc
// @ID          deleteActivity
// @Summary     Delete an activity
// @Tags        Activities
// @Produce     json
//
// @Param       id  path  int  true  "Activity ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Activity not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /activities/{id} [delete]
func (h *Handlers) DeleteActivity(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	if h.getOwnActivity(c, id, uid) == nil {
		return
	}
	if err := h.store.DeleteActivity(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
