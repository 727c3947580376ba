package mocks

import (
	"fmt"
	"time"

	"github.com/sibe/identity/domain"
)

// MockTokenService implements domain.TokenService for testing.
type MockTokenService struct {
	IssueAccessTokenFunc  func(account *domain.Account) (string, error)
	IssueRefreshTokenFunc func(account *domain.Account) (string, error)
	VerifyFunc            func(token string, kind domain.TokenKind) (*domain.TokenClaims, error)
	DecodeUnverifiedFunc  func(token string) (*domain.TokenClaims, error)
	AccessTTLFunc         func() time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors.
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) IssueAccessToken(account *domain.Account) (string, error) {
	if m.IssueAccessTokenFunc != nil {
		return m.IssueAccessTokenFunc(account)
	}
	return fmt.Sprintf("access-token-%d", account.ID), nil
}

func (m *MockTokenService) IssueRefreshToken(account *domain.Account) (string, error) {
	if m.IssueRefreshTokenFunc != nil {
		return m.IssueRefreshTokenFunc(account)
	}
	return fmt.Sprintf("refresh-token-%d", account.ID), nil
}

func (m *MockTokenService) Verify(token string, kind domain.TokenKind) (*domain.TokenClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token, kind)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) DecodeUnverified(token string) (*domain.TokenClaims, error) {
	if m.DecodeUnverifiedFunc != nil {
		return m.DecodeUnverifiedFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) AccessTTL() time.Duration {
	if m.AccessTTLFunc != nil {
		return m.AccessTTLFunc()
	}
	return 24 * time.Hour
}
