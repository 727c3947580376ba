package mocks

import (
	"context"

	"github.com/sibe/identity/domain"
)

// MockAccountService is a func-field mock of domain.AccountService.
type MockAccountService struct {
	SetStateFunc     func(ctx context.Context, accountID uint, state domain.AccountState) error
	LoginHistoryFunc func(ctx context.Context, accountID uint, limit int) ([]domain.LoginAttempt, error)
	CreateRoleFunc   func(ctx context.Context, role *domain.Role) error
	ListRolesFunc    func(ctx context.Context) ([]domain.Role, error)
	UpdateRoleFunc   func(ctx context.Context, role *domain.Role) error
	DeleteRoleFunc   func(ctx context.Context, id uint) error
}

// NewMockAccountService returns a mock with permissive defaults.
func NewMockAccountService() *MockAccountService {
	return &MockAccountService{
		SetStateFunc: func(ctx context.Context, accountID uint, state domain.AccountState) error {
			return nil
		},
		LoginHistoryFunc: func(ctx context.Context, accountID uint, limit int) ([]domain.LoginAttempt, error) {
			return nil, nil
		},
		CreateRoleFunc: func(ctx context.Context, role *domain.Role) error {
			role.ID = 1
			return nil
		},
		ListRolesFunc: func(ctx context.Context) ([]domain.Role, error) {
			return nil, nil
		},
		UpdateRoleFunc: func(ctx context.Context, role *domain.Role) error {
			return nil
		},
		DeleteRoleFunc: func(ctx context.Context, id uint) error {
			return nil
		},
	}
}

func (m *MockAccountService) SetState(ctx context.Context, accountID uint, state domain.AccountState) error {
	return m.SetStateFunc(ctx, accountID, state)
}

func (m *MockAccountService) LoginHistory(ctx context.Context, accountID uint, limit int) ([]domain.LoginAttempt, error) {
	return m.LoginHistoryFunc(ctx, accountID, limit)
}

func (m *MockAccountService) CreateRole(ctx context.Context, role *domain.Role) error {
	return m.CreateRoleFunc(ctx, role)
}

func (m *MockAccountService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return m.ListRolesFunc(ctx)
}

func (m *MockAccountService) UpdateRole(ctx context.Context, role *domain.Role) error {
	return m.UpdateRoleFunc(ctx, role)
}

func (m *MockAccountService) DeleteRole(ctx context.Context, id uint) error {
	return m.DeleteRoleFunc(ctx, id)
}
