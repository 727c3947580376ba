package mocks

import (
	"context"

	"github.com/sibe/identity/domain"
)

// MockAccountRepository implements domain.AccountRepository for testing.
type MockAccountRepository struct {
	CreateFunc             func(ctx context.Context, account *domain.Account) error
	FindByEmailFunc        func(ctx context.Context, email string) (*domain.Account, error)
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.Account, error)
	UpdatePasswordHashFunc func(ctx context.Context, accountID uint, newHash string) error
	SetStateFunc           func(ctx context.Context, accountID uint, state domain.AccountState) error
	RecordLoginAttemptFunc func(ctx context.Context, accountID uint, success bool, meta domain.RequestMeta) error
	ListLoginAttemptsFunc  func(ctx context.Context, accountID uint, limit int) ([]domain.LoginAttempt, error)

	// RecordedAttempts collects every audit write for assertion.
	RecordedAttempts []domain.LoginAttempt
}

// NewMockAccountRepository creates a new MockAccountRepository with default
// behaviors.
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	account.ID = 1
	return nil
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdatePasswordHash(ctx context.Context, accountID uint, newHash string) error {
	if m.UpdatePasswordHashFunc != nil {
		return m.UpdatePasswordHashFunc(ctx, accountID, newHash)
	}
	return nil
}

func (m *MockAccountRepository) SetState(ctx context.Context, accountID uint, state domain.AccountState) error {
	if m.SetStateFunc != nil {
		return m.SetStateFunc(ctx, accountID, state)
	}
	return nil
}

func (m *MockAccountRepository) RecordLoginAttempt(ctx context.Context, accountID uint, success bool, meta domain.RequestMeta) error {
	m.RecordedAttempts = append(m.RecordedAttempts, domain.LoginAttempt{
		AccountID: accountID,
		IP:        meta.IP,
		Browser:   meta.Browser,
		OS:        meta.OS,
		Device:    meta.Device,
		Success:   success,
	})
	if m.RecordLoginAttemptFunc != nil {
		return m.RecordLoginAttemptFunc(ctx, accountID, success, meta)
	}
	return nil
}

func (m *MockAccountRepository) ListLoginAttempts(ctx context.Context, accountID uint, limit int) ([]domain.LoginAttempt, error) {
	if m.ListLoginAttemptsFunc != nil {
		return m.ListLoginAttemptsFunc(ctx, accountID, limit)
	}
	return nil, nil
}
