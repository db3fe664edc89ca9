// OTA account HTTP handlers.
//
// REST endpoints for the platform accounts owned by the current user:
//   - GET    /accounts        (list own)
//   - POST   /accounts        (create)
//   - GET    /accounts/{id}
//   - PUT    /accounts/{id}
//   - DELETE /accounts/{id}
//
// Ownership is enforced here: reads and writes on a row belonging to another
// user answer 404 so that foreign ids are indistinguishable from absent ones.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelrm/go-ota-backend/internal/domain"
)

// getOwnAccount loads an account and checks ownership. Writes the response on
// failure and returns nil.
func (h *Handlers) getOwnAccount(c *gin.Context, id, uid int64) *domain.OtaAccount {
	a, err := h.store.GetOtaAccount(c.Request.Context(), id)
	if err != nil {
		storeFail(c, err, "account not found")
		return nil
	}
	if a.UserID != uid {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "account not found")
		return nil
	}
	return a
}

// ListAccounts godoc
// @ID          listAccounts
// @Summary     List OTA accounts
// @Description Returns every OTA account belonging to the current user.
// @Tags        Accounts
// @Produce     json
//
// @Success     200  {array}   domain.OtaAccount
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /accounts [get]
func (h *Handlers) ListAccounts(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	items, err := h.store.GetOtaAccountsByUserID(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateAccount godoc
// @ID          createAccount
// @Summary     Create an OTA account
// @Description Registers an OTA platform account for the current user. The user id in the payload is ignored.
// @Tags        Accounts
// @Accept      json
// @Produce     json
//
// @Param       body  body  domain.NewOtaAccount  true  "Account payload"
//
// @Success     201  {object}  domain.OtaAccount
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /accounts [post]
func (h *Handlers) CreateAccount(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	var in domain.NewOtaAccount
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	in.UserID = uid

	a, err := h.store.CreateOtaAccount(c.Request.Context(), in)
	if err != nil {
		storeFail(c, err, "account not found")
		return
	}
	ok(c, http.StatusCreated, a)
}

// GetAccount godoc
// @ID          getAccount
// @Summary     Get an OTA account
// @Tags        Accounts
// @Produce     json
//
// @Param       id  path  int  true  "Account ID"
//
// @Success     200  {object}  domain.OtaAccount
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Account not found"
// @Router      /accounts/{id} [get]
func (h *Handlers) GetAccount(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	a := h.getOwnAccount(c, id, uid)
	if a == nil {
		return
	}
	ok(c, http.StatusOK, a)
}

// UpdateAccount godoc
// @ID          updateAccount
// @Summary     Update an OTA account
// @Description Merges the supplied fields into the account. Omitted fields are unchanged.
// @Tags        Accounts
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                       true  "Account ID"
// @Param       body  body  domain.OtaAccountPatch  true  "Fields to update"
//
// @Success     200  {object}  domain.OtaAccount
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Account not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /accounts/{id} [put]
func (h *Handlers) UpdateAccount(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	if h.getOwnAccount(c, id, uid) == nil {
		return
	}

	var p domain.OtaAccountPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a, err := h.store.UpdateOtaAccount(c.Request.Context(), id, p)
	if err != nil {
		storeFail(c, err, "account not found")
		return
	}
	ok(c, http.StatusOK, a)
}

// DeleteAccount godoc
// @ID          deleteAccount
// @Summary     Delete an OTA account
// @Tags        Accounts
// @Produce     json
//
// @Param       id  path  int  true  "Account ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Account not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /accounts/{id} [delete]
func (h *Handlers) DeleteAccount(c *gin.Context) {
	uid, okUser := currentUserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	id, okID := parseID(c)
	if !okID {
		return
	}
	if h.getOwnAccount(c, id, uid) == nil {
		return
	}
	if err := h.store.DeleteOtaAccount(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
