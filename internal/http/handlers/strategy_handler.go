// Pricing strategy HTTP handlers.
//
// REST endpoints for strategy rows:
//   - GET    /strategies                 (own)
//   - GET    /strategies/applied         (own, applied only)
//   - GET    /strategies/recent?limit=   (applied, newest first, cross-user)
//   - POST   /strategies
//   - GET    /strategies/{id}
//   - PUT    /strategies/{id}
//   - POST   /strategies/{id}/apply
//   - DELETE /strategies/{id}
//
// Applying is a one-way transition: it stamps applied_at and flips status to
// "applied". Re-applying an applied strategy is a no-op success.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
	"github.com/hotelrm/go-ota-backend/internal/utils"
)

// getOwnStrategy loads a strategy and checks ownership.
func (h *Handlers) getOwnStrategy(c *gin.Context, id, uid int64) *domain.Strategy {
	s, err := h.store.GetStrategy(c.Request.Context(), id)
	if err != nil {
		storeFail(c, err, "strategy not found")
		return nil
	}
	if s.UserID != uid {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "strategy not found")
		return nil
	}
	return s
}

// ListStrategies godoc
// @ID          listStrategies
// @Summary     List strategies
// @Description Returns every strategy belonging to the current user.
// @Tags        Strategies
// @Produce     json
//
// @Success     200  {array}   domain.Strategy
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategies [get]
func (h *Handlers) ListStrategies(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	items, err := h.store.GetStrategiesByUserID(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// ListAppliedStrategies godoc
// @ID          listAppliedStrategies
// @Summary     List applied strategies
// @Description Returns the current user's strategies that have been put into effect.
// @Tags        Strategies
// @Produce     json
//
// @Success     200  {array}   domain.Strategy
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategies/applied [get]
func (h *Handlers) ListAppliedStrategies(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	items, err := h.store.GetAppliedStrategiesByUserID(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// ListRecentStrategies godoc
// @ID          listRecentStrategies
// @Summary     Recently applied strategies
// @Description Returns the most recently applied strategies across all users, newest first.
// @Tags        Strategies
// @Produce     json
//
// @Param       limit  query  int  false  "Maximum rows"  minimum(1) maximum(50) default(5)
//
// @Success     200  {array}   domain.Strategy
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategies/recent [get]
func (h *Handlers) ListRecentStrategies(c *gin.Context) {
	const (
		defaultLimit = 5
		maxLimit     = 50
	)
	limit := utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items, err := h.store.GetRecentAppliedStrategies(c.Request.Context(), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateStrategy godoc
// @ID          createStrategy
// @Summary     Create a strategy
// @Description Records a strategy recommendation for the current user. The user id in the payload is ignored.
// @Tags        Strategies
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.NewStrategy  true  "Strategy payload"
//
// @Success     201  {object}  domain.Strategy
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategies [post]
func (h *Handlers) CreateStrategy(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	var in domain.NewStrategy
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	in.UserID = uid

	s, err := h.store.CreateStrategy(c.Request.Context(), in)
	if err != nil {
		storeFail(c, err, "strategy not found")
		return
	}
	ok(c, http.StatusCreated, s)
}

// GetStrategy godoc
// @ID          getStrategy
// @Summary     Get a strategy
// @Tags        Strategies
// @Produce     json
//
// @Param       id  path  int  true  "Strategy ID"
//
// @Success     200  {object}  domain.Strategy
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Strategy not found"
// @Router      /strategies/{id} [get]
func (h *Handlers) GetStrategy(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	s := h.getOwnStrategy(c, id, uid)
	if s == nil {
		return
	}
	ok(c, http.StatusOK, s)
}

// UpdateStrategy godoc
// @ID          updateStrategy
// @Summary     Update a strategy
// @Description Merges the supplied fields into the strategy. applied_at can be set but never cleared.
// @Tags        Strategies
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                    true  "Strategy ID"
// @Param       body  body  domain.StrategyPatch  true  "Fields to update"
//
// @Success     200  {object}  domain.Strategy
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Strategy not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategies/{id} [put]
func (h *Handlers) UpdateStrategy(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	if h.getOwnStrategy(c, id, uid) == nil {
		return
	}

	var p domain.StrategyPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	s, err := h.store.UpdateStrategy(c.Request.Context(), id, p)
	if err != nil {
		storeFail(c, err, "strategy not found")
		return
	}
	ok(c, http.StatusOK, s)
}

// ApplyStrategy godoc
// @ID          applyStrategy
// @Summary     Apply a strategy
// @Description Marks the strategy as applied, stamping applied_at. Idempotent for already applied rows.
// @Tags        Strategies
// @Produce     json
//
// @Param       id  path  int  true  "Strategy ID"
//
// @Success     200  {object}  domain.Strategy
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Strategy not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategies/{id}/apply [post]
func (h *Handlers) ApplyStrategy(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	s := h.getOwnStrategy(c, id, uid)
	if s == nil {
		return
	}
	if s.Applied() {
		ok(c, http.StatusOK, s)
		return
	}

	nowTS := time.Now().UTC()
	applied := "applied"
	s, err := h.store.UpdateStrategy(c.Request.Context(), id, domain.StrategyPatch{
		Status:    &applied,
		AppliedAt: &nowTS,
	})
	if err != nil {
		storeFail(c, err, "strategy not found")
		return
	}
	ok(c, http.StatusOK, s)
}

// DeleteStrategy godoc
// @ID          deleteStrategy
// @Summary     Delete a strategy
// @Tags        Strategies
// @Produce     json
//
// @Param       id  path  int  true  "Strategy ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Strategy not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategies/{id} [delete]
func (h *Handlers) DeleteStrategy(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	if h.getOwnStrategy(c, id, uid) == nil {
		return
	}
	if err := h.store.DeleteStrategy(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
