package mocks

import (
	"context"

	"github.com/sibe/identity/domain"
)

// MockAuthService is a func-field mock of domain.AuthService.
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, reg domain.Registration, meta domain.RequestMeta) (*domain.AuthResult, error)
	LoginFunc          func(ctx context.Context, email, password string, meta domain.RequestMeta) (*domain.AuthResult, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (string, error)
	ChangePasswordFunc func(ctx context.Context, accountID uint, oldPassword, newPassword string) error
	ProfileFunc        func(ctx context.Context, accountID uint) (*domain.Account, error)
}

// NewMockAuthService returns a mock whose calls fail until configured.
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		RegisterFunc: func(ctx context.Context, reg domain.Registration, meta domain.RequestMeta) (*domain.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
		LoginFunc: func(ctx context.Context, email, password string, meta domain.RequestMeta) (*domain.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
		RefreshFunc: func(ctx context.Context, refreshToken string) (string, error) {
			return "", domain.ErrTokenInvalid
		},
		ChangePasswordFunc: func(ctx context.Context, accountID uint, oldPassword, newPassword string) error {
			return domain.ErrInvalidCredentials
		},
		ProfileFunc: func(ctx context.Context, accountID uint) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
}

func (m *MockAuthService) Register(ctx context.Context, reg domain.Registration, meta domain.RequestMeta) (*domain.AuthResult, error) {
	return m.RegisterFunc(ctx, reg, meta)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, meta domain.RequestMeta) (*domain.AuthResult, error) {
	return m.LoginFunc(ctx, email, password, meta)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return m.RefreshFunc(ctx, refreshToken)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, accountID uint, oldPassword, newPassword string) error {
	return m.ChangePasswordFunc(ctx, accountID, oldPassword, newPassword)
}

func (m *MockAuthService) Profile(ctx context.Context, accountID uint) (*domain.Account, error) {
	return m.ProfileFunc(ctx, accountID)
}
