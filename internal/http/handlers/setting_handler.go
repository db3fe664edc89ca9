// Settings HTTP handlers.
//
// Each user owns at most one settings row (unique index on user_id):
//   - GET /settings   (returns the row, creating defaults on first read)
//   - PUT /settings   (merge update)
//
// There is no delete; preferences persist for the account's lifetime.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
	"github.com/hotelrm/go-ota-backend/internal/store"
)

// settingsFor fetches the user's settings row, creating the default row on
// first access. Failure responses are written here.
func (h *Handlers) settingsFor(c *gin.Context, uid int64) *domain.Setting {
	ctx := c.Request.Context()
	row, err := h.store.GetSettingByUserID(ctx, uid)
	if err == nil {
		return row
	}
	if !errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return nil
	}

	row, err = h.store.CreateSetting(ctx, domain.NewSetting{UserID: uid})
	if err == nil {
		return row
	}
	// Lost a create race; the winner's row is the answer.
	if errors.Is(err, store.ErrDuplicate) {
		if row, err = h.store.GetSettingByUserID(ctx, uid); err == nil {
			return row
		}
	}
	fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	return nil
}

// GetSettings godoc
// @ID          getSettings
// @Summary     Get settings
// @Description Returns the current user's settings, materializing the default row on first access.
// @Tags        Settings
// @Produce     json
//
// @Success     200  {object}  domain.Setting
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /settings [get]
func (h *Handlers) GetSettings(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	row := h.settingsFor(c, uid)
	if row == nil {
		return
	}
	ok(c, http.StatusOK, row)
}

// UpdateSettings godoc
// @ID          updateSettings
// @Summary     Update settings
// @Description Merges the supplied fields into the current user's settings row.
// @Tags        Settings
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.SettingPatch  true  "Fields to update"
//
// @Success     200  {object}  domain.Setting
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /settings [put]
func (h *Handlers) UpdateSettings(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	var p domain.SettingPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	row := h.settingsFor(c, uid)
	if row == nil {
		return
	}

	row, err := h.store.UpdateSetting(c.Request.Context(), row.ID, p)
	if err != nil {
		storeFail(c, err, "settings not found")
		return
	}
	ok(c, http.StatusOK, row)
}
