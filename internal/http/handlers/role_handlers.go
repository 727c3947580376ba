package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/domain"
)

// RoleHandlers handles role administration. All routes are admin-only.
type RoleHandlers struct {
	accountSvc domain.AccountService
}

// NewRoleHandlers creates new role handlers.
func NewRoleHandlers(accountSvc domain.AccountService) *RoleHandlers {
	return &RoleHandlers{accountSvc: accountSvc}
}

// RoleRequest represents a role create or update payload.
type RoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// List handles GET /api/roles.
func (h *RoleHandlers) List(c *gin.Context) {
	roles, err := h.accountSvc.ListRoles(c.Request.Context())
	if err != nil {
		internalError(c, "failed to list roles", err)
		return
	}

	items := make([]gin.H, 0, len(roles))
	for _, r := range roles {
		items = append(items, roleJSON(&r))
	}
	ok(c, http.StatusOK, "roles loaded", gin.H{"roles": items})
}

// Create handles POST /api/roles.
func (h *RoleHandlers) Create(c *gin.Context) {
	var req RoleRequest
	if violations := bindJSON(c, &req); len(violations) > 0 {
		validationFailed(c, violations)
		return
	}

	role := &domain.Role{Name: domain.RoleName(req.Name), Description: req.Description}
	if err := h.accountSvc.CreateRole(c.Request.Context(), role); err != nil {
		internalError(c, "failed to create role", err)
		return
	}

	ok(c, http.StatusCreated, "role created", gin.H{"role": roleJSON(role)})
}

// Update handles PUT /api/roles/:id.
func (h *RoleHandlers) Update(c *gin.Context) {
	roleID, valid := pathID(c, "id")
	if !valid {
		return
	}

	var req RoleRequest
	if violations := bindJSON(c, &req); len(violations) > 0 {
		validationFailed(c, violations)
		return
	}

	role := &domain.Role{ID: roleID, Name: domain.RoleName(req.Name), Description: req.Description}
	if err := h.accountSvc.UpdateRole(c.Request.Context(), role); err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			fail(c, http.StatusNotFound, "role not found")
			return
		}
		internalError(c, "failed to update role", err)
		return
	}

	ok(c, http.StatusOK, "role updated", gin.H{"role": roleJSON(role)})
}

// Delete handles DELETE /api/roles/:id.
func (h *RoleHandlers) Delete(c *gin.Context) {
	roleID, valid := pathID(c, "id")
	if !valid {
		return
	}

	if err := h.accountSvc.DeleteRole(c.Request.Context(), roleID); err != nil {
		switch {
		case errors.Is(err, domain.ErrRoleNotFound):
			fail(c, http.StatusNotFound, "role not found")
		case errors.Is(err, domain.ErrRoleInUse):
			fail(c, http.StatusConflict, "role is still assigned to accounts")
		default:
			internalError(c, "failed to delete role", err)
		}
		return
	}

	ok(c, http.StatusOK, "role deleted", gin.H{"id": roleID})
}

func roleJSON(role *domain.Role) gin.H {
	return gin.H{"id": role.ID, "name": role.Name, "description": role.Description}
}
