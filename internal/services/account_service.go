package services

import (
	"context"
	"fmt"

	"github.com/sibe/identity/domain"
)

// AccountServiceImpl implements domain.AccountService, the administrative
// surface over accounts and roles.
type AccountServiceImpl struct {
	accountRepo domain.AccountRepository
	roleRepo    domain.RoleRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo domain.AccountRepository, roleRepo domain.RoleRepository) domain.AccountService {
	return &AccountServiceImpl{accountRepo: accountRepo, roleRepo: roleRepo}
}

// SetState implements domain.AccountService. State changes take effect on
// the very next authenticated request because the session middleware
// re-checks the stored state every time.
func (s *AccountServiceImpl) SetState(ctx context.Context, accountID uint, state domain.AccountState) error {
	if !state.Valid() {
		return fmt.Errorf("unknown account state %q", state)
	}
	return s.accountRepo.SetState(ctx, accountID, state)
}

// LoginHistory implements domain.AccountService.
func (s *AccountServiceImpl) LoginHistory(ctx context.Context, accountID uint, limit int) ([]domain.LoginAttempt, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.accountRepo.ListLoginAttempts(ctx, accountID, limit)
}

// CreateRole implements domain.AccountService.
func (s *AccountServiceImpl) CreateRole(ctx context.Context, role *domain.Role) error {
	if role.Name == "" {
		return fmt.Errorf("role name must not be empty")
	}
	return s.roleRepo.Create(ctx, role)
}

// ListRoles implements domain.AccountService.
func (s *AccountServiceImpl) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roleRepo.List(ctx)
}

// UpdateRole implements domain.AccountService.
func (s *AccountServiceImpl) UpdateRole(ctx context.Context, role *domain.Role) error {
	if role.Name == "" {
		return fmt.Errorf("role name must not be empty")
	}
	return s.roleRepo.Update(ctx, role)
}

// DeleteRole implements domain.AccountService. Deletion fails while any
// account references the role.
func (s *AccountServiceImpl) DeleteRole(ctx context.Context, id uint) error {
	return s.roleRepo.Delete(ctx, id)
}
