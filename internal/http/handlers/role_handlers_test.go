package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/domain"
	"github.com/sibe/identity/internal/mocks"
)

func newRoleRouter(accountSvc domain.AccountService) *gin.Engine {
	h := NewRoleHandlers(accountSvc)
	r := gin.New()
	r.GET("/api/roles", h.List)
	r.POST("/api/roles", h.Create)
	r.PUT("/api/roles/:id", h.Update)
	r.DELETE("/api/roles/:id", h.Delete)
	return r
}

func TestListRoles(t *testing.T) {
	accountSvc := mocks.NewMockAccountService()
	accountSvc.ListRolesFunc = func(ctx context.Context) ([]domain.Role, error) {
		return []domain.Role{
			{ID: 1, Name: domain.RoleClient, Description: "ticket buyer"},
			{ID: 2, Name: domain.RoleOrganizer, Description: "event organizer"},
		}, nil
	}
	r := newRoleRouter(accountSvc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/roles", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "organizer") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCreateRole(t *testing.T) {
	r := newRoleRouter(mocks.NewMockAccountService())

	req := httptest.NewRequest("POST", "/api/roles", bytes.NewReader([]byte(`{"name":"auditor","description":"read-only"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", w.Code, w.Body.String())
	}
}

func TestDeleteRoleInUse(t *testing.T) {
	accountSvc := mocks.NewMockAccountService()
	accountSvc.DeleteRoleFunc = func(ctx context.Context, id uint) error {
		return domain.ErrRoleInUse
	}
	r := newRoleRouter(accountSvc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/roles/1", nil))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (%s)", w.Code, w.Body.String())
	}
}

func TestUpdateRoleNotFound(t *testing.T) {
	accountSvc := mocks.NewMockAccountService()
	accountSvc.UpdateRoleFunc = func(ctx context.Context, role *domain.Role) error {
		return domain.ErrRoleNotFound
	}
	r := newRoleRouter(accountSvc)

	req := httptest.NewRequest("PUT", "/api/roles/42", bytes.NewReader([]byte(`{"name":"auditor"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (%s)", w.Code, w.Body.String())
	}
}
