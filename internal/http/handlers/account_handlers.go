package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/domain"
)

// AccountHandlers handles administrative account operations.
type AccountHandlers struct {
	accountSvc domain.AccountService
}

// NewAccountHandlers creates new account handlers.
func NewAccountHandlers(accountSvc domain.AccountService) *AccountHandlers {
	return &AccountHandlers{accountSvc: accountSvc}
}

// SetStateRequest represents an account state change payload.
type SetStateRequest struct {
	State string `json:"state" binding:"required,oneof=active inactive suspended deleted"`
}

// SetState handles PATCH /api/accounts/:id/state.
func (h *AccountHandlers) SetState(c *gin.Context) {
	accountID, valid := pathID(c, "id")
	if !valid {
		return
	}

	var req SetStateRequest
	if violations := bindJSON(c, &req); len(violations) > 0 {
		validationFailed(c, violations)
		return
	}

	err := h.accountSvc.SetState(c.Request.Context(), accountID, domain.AccountState(req.State))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			fail(c, http.StatusNotFound, "account not found")
			return
		}
		internalError(c, "failed to update account state", err)
		return
	}

	ok(c, http.StatusOK, "account state updated", gin.H{"id": accountID, "state": req.State})
}

// LoginHistory handles GET /api/accounts/:id/logins.
func (h *AccountHandlers) LoginHistory(c *gin.Context) {
	accountID, valid := pathID(c, "id")
	if !valid {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	attempts, err := h.accountSvc.LoginHistory(c.Request.Context(), accountID, limit)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			fail(c, http.StatusNotFound, "account not found")
			return
		}
		internalError(c, "failed to load login history", err)
		return
	}

	items := make([]gin.H, 0, len(attempts))
	for _, a := range attempts {
		items = append(items, gin.H{
			"id":         a.ID,
			"success":    a.Success,
			"ip":         a.IP,
			"browser":    a.Browser,
			"os":         a.OS,
			"device":     a.Device,
			"created_at": a.CreatedAt,
		})
	}
	ok(c, http.StatusOK, "login history loaded", gin.H{"attempts": items})
}

// pathID parses a numeric path parameter, answering 400 on garbage.
func pathID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, param+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
