// Strategy template HTTP handlers. Global catalog, same access rules as
// strategy parameters.
//
//   - GET    /strategy-templates
//   - POST   /strategy-templates
//   - GET    /strategy-templates/{id}
//   - PUT    /strategy-templates/{id}
//   - DELETE /strategy-templates/{id}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
)

// ListStrategyTemplates godoc
// @ID          listStrategyTemplates
// @Summary     List strategy templates
// @Tags        Templates
// @Produce     json
//
// @Success     200  {array}   domain.StrategyTemplate
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategy-templates [get]
func (h *Handlers) ListStrategyTemplates(c *gin.Context) {
	items, err := h.store.ListStrategyTemplates(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateStrategyTemplate godoc
// @ID          createStrategyTemplate
// @Summary     Create a strategy template
// @Tags        Templates
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.NewStrategyTemplate  true  "Template payload"
//
// @Success     201  {object}  domain.StrategyTemplate
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategy-templates [post]
func (h *Handlers) CreateStrategyTemplate(c *gin.Context) {
	var in domain.NewStrategyTemplate
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	st, err := h.store.CreateStrategyTemplate(c.Request.Context(), in)
	if err != nil {
		storeFail(c, err, "strategy template not found")
		return
	}
	ok(c, http.StatusCreated, st)
}

// GetStrategyTemplate godoc
// @ID          getStrategyTemplate
// @Summary     Get a strategy template
// @Tags        Templates
// @Produce     json
//
// @Param       id  path  int  true  "Template ID"
//
// @Success     200  {object}  domain.StrategyTemplate
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Router      /strategy-templates/{id} [get]
func (h *Handlers) GetStrategyTemplate(c *gin.Context) {
	id, okID := parseID(c)
	if !okID {
		return
	}
	st, err := h.store.GetStrategyTemplate(c.Request.Context(), id)
	if err != nil {
		storeFail(c, err, "strategy template not found")
		return
	}
	ok(c, http.StatusOK, st)
}

// UpdateStrategyTemplate godoc
// @ID          updateStrategyTemplate
// @Summary     Update a strategy template
// @Tags        Templates
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                            true  "Template ID"
// @Param       body  body  domain.StrategyTemplatePatch  true  "Fields to update"
//
// @Success     200  {object}  domain.StrategyTemplate
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategy-templates/{id} [put]
func (h *Handlers) UpdateStrategyTemplate(c *gin.Context) {
	id, okID := parseID(c)
	if !okID {
		return
	}

	var p domain.StrategyTemplatePatch
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	st, err := h.store.UpdateStrategyTemplate(c.Request.Context(), id, p)
	if err != nil {
		storeFail(c, err, "strategy template not found")
		return
	}
	ok(c, http.StatusOK, st)
}

// DeleteStrategyTemplate godoc
// @ID          deleteStrategyTemplate
// @Summary     Delete a strategy template
// @Tags        Templates
// @Produce     json
//
// @Param       id  path  int  true  "Template ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /strategy-templates/{id} [delete]
func (h *Handlers) DeleteStrategyTemplate(c *gin.Context) {
	id, okID := parseID(c)
	if !okID {
		return
	}
	if err := h.store.DeleteStrategyTemplate(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
