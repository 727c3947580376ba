package mocks

import (
	"context"

	"github.com/sibe/identity/domain"
)

// MockRoleRepository implements domain.RoleRepository for testing.
type MockRoleRepository struct {
	CreateFunc     func(ctx context.Context, role *domain.Role) error
	FindByIDFunc   func(ctx context.Context, id uint) (*domain.Role, error)
	FindByNameFunc func(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	ListFunc       func(ctx context.Context) ([]domain.Role, error)
	UpdateFunc     func(ctx context.Context, role *domain.Role) error
	DeleteFunc     func(ctx context.Context, id uint) error
}

// NewMockRoleRepository creates a MockRoleRepository whose FindByName
// resolves the three platform roles by default.
func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{}
}

func (m *MockRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, role)
	}
	role.ID = 10
	return nil
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id uint) (*domain.Role, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrRoleNotFound
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	switch name {
	case domain.RoleClient:
		return &domain.Role{ID: 1, Name: domain.RoleClient}, nil
	case domain.RoleOrganizer:
		return &domain.Role{ID: 2, Name: domain.RoleOrganizer}, nil
	case domain.RoleAdministrator:
		return &domain.Role{ID: 3, Name: domain.RoleAdministrator}, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (m *MockRoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockRoleRepository) Update(ctx context.Context, role *domain.Role) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, role)
	}
	return nil
}

func (m *MockRoleRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
