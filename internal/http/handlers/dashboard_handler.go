// Dashboard HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardSummary godoc
// @ID          dashboardSummary
// @Summary     Dashboard summary
// @Description Returns aggregate row counts for the current user's accounts, activities, and strategies.
// @Tags        Dashboard
// @Produce     json
//
// @Success     200  {object}  store.Summary
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dashboard/summary [get]
func (h *Handlers) DashboardSummary(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	sum, err := h.store.Summary(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sum)
}
