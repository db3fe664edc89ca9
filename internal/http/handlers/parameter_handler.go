// Strategy parameter HTTP handlers.
//
// Strategy parameters are a global catalog of tunable weights, not scoped to a
// user. Any authenticated user may read or change them; the console's roles
// are advisory.
//
//   - GET    /strategy-parameters
//   - POST   /strategy-parameters
//   - GET    /strategy-parameters/{id}
//   - PUT    /strategy-parameters/{id}
//   - DELETE /strategy-parameters/{id}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
)

// ListStrategyParameters godoc
// @ID          listStrategyParameters
// @Summary     List strategy parameters
// @Tags        Parameters
// @Produce     json
//
// @Success     200  {array}   domain.StrategyParameter
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategy-parameters [get]
func (h *Handlers) ListStrategyParameters(c *gin.Context) {
	items, err := h.store.ListStrategyParameters(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateStrategyParameter godoc
// @ID          createStrategyParameter
// @Summary     Create a strategy parameter
// @Description Adds a weight to the global catalog. param_key must be unique.
// @Tags        Parameters
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.NewStrategyParameter  true  "Parameter payload"
//
// @Success     201  {object}  domain.StrategyParameter
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     409  {object}  handlers.ErrorResponse  "param_key already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategy-parameters [post]
func (h *Handlers) CreateStrategyParameter(c *gin.Context) {
	var in domain.NewStrategyParameter
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	sp, err := h.store.CreateStrategyParameter(c.Request.Context(), in)
	if err != nil {
		storeFail(c, err, "strategy parameter not found")
		return
	}
	ok(c, http.StatusCreated, sp)
}

// GetStrategyParameter godoc
// @ID          getStrategyParameter
// @Summary     Get a strategy parameter
// @Tags        Parameters
// @Produce     json
//
// @Param       id  path  int  true  "Parameter ID"
//
// @Success     200  {object}  domain.StrategyParameter
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Parameter not found"
// @Router      /strategy-parameters/{id} [get]
func (h *Handlers) GetStrategyParameter(c *gin.Context) {
	id, okID := parseID(c)
	if !okID {
		return
	}
	sp, err := h.store.GetStrategyParameter(c.Request.Context(), id)
	if err != nil {
		storeFail(c, err, "strategy parameter not found")
		return
	}
	ok(c, http.StatusOK, sp)
}

// UpdateStrategyParameter godoc
// @ID          updateStrategyParameter
// @Summary     Update a strategy parameter
// @Tags        Parameters
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                             true  "Parameter ID"
// @Param       body  body  domain.StrategyParameterPatch  true  "Fields to update"
//
// @Success     200  {object}  domain.StrategyParameter
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Parameter not found"
// @Failure     409  {object}  handlers.ErrorResponse  "param_key already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategy-parameters/{id} [put]
func (h *Handlers) UpdateStrategyParameter(c *gin.Context) {
	id, okID := parseID(c)
	if !okID {
		return
	}

	var p domain.StrategyParameterPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	sp, err := h.store.UpdateStrategyParameter(c.Request.Context(), id, p)
	if err != nil {
		storeFail(c, err, "strategy parameter not found")
		return
	}
	ok(c, http.StatusOK, sp)
}

// DeleteStrategyParameter godoc
// @ID          deleteStrategyParameter
// @Summary     Delete a strategy parameter
// @Tags        Parameters
// @Produce     json
//
// @Param       id  path  int  true  "Parameter ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategy-parameters/{id} [delete]
func (h *Handlers) DeleteStrategyParameter(c *gin.Context) {
	id, okID := parseID(c)
	if !okID {
		return
	}
	if err := h.store.DeleteStrategyParameter(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
