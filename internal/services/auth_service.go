package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sibe/identity/domain"
)

// AuthServiceImpl implements domain.AuthService.
type AuthServiceImpl struct {
	accountRepo domain.AccountRepository
	roleRepo    domain.RoleRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
}

// NewAuthService creates a new auth service.
func NewAuthService(
	accountRepo domain.AccountRepository,
	roleRepo domain.RoleRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
) domain.AuthService {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		roleRepo:    roleRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// NormalizeEmail lower-cases and trims an email address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register implements domain.AuthService.
func (s *AuthServiceImpl) Register(ctx context.Context, reg domain.Registration, meta domain.RequestMeta) (*domain.AuthResult, error) {
	email := NormalizeEmail(reg.Email)

	if violations := s.passwordSvc.CheckStrength(reg.Password); len(violations) > 0 {
		return nil, domain.ErrWeakPassword
	}

	if existing, err := s.accountRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	roleName := reg.Role
	if !roleName.Valid() {
		roleName = domain.RoleClient
	}
	role, err := s.roleRepo.FindByName(ctx, roleName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role %s: %w", roleName, err)
	}

	hash, err := s.passwordSvc.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		State:        domain.StateActive,
		RoleID:       role.ID,
		Role:         role,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if err == domain.ErrEmailTaken {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	// The initial registration counts as a successful login in the audit
	// trail, matching the issued token pair.
	s.audit(ctx, account.ID, true, meta)

	return s.issuePair(account)
}

// Login implements domain.AuthService. A miss on the email produces no
// audit record (there is no account to attach it to); every attempt against
// a known account produces exactly one.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, meta domain.RequestMeta) (*domain.AuthResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, domain.ErrAccountNotFound) {
		// Deliberately indistinguishable from a wrong password.
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		s.audit(ctx, account.ID, false, meta)
		return nil, domain.ErrInvalidCredentials
	}

	if account.State != domain.StateActive {
		s.audit(ctx, account.ID, false, meta)
		return nil, domain.ErrAccountNotActive
	}

	s.audit(ctx, account.ID, true, meta)
	return s.issuePair(account)
}

// Refresh implements domain.AuthService. Only a refresh-kind token is
// accepted, and the account must still be active at the time of the call.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenSvc.Verify(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return "", err
	}

	account, err := s.accountRepo.FindByID(ctx, claims.AccountID)
	if err != nil {
		return "", domain.ErrTokenInvalid
	}
	if account.State != domain.StateActive {
		return "", domain.ErrAccountNotActive
	}

	accessToken, err := s.tokenSvc.IssueAccessToken(account)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return accessToken, nil
}

// ChangePassword implements domain.AuthService. The old secret is
// re-verified before the hash is replaced.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, accountID uint, oldPassword, newPassword string) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(account.PasswordHash, oldPassword) {
		return domain.ErrInvalidCredentials
	}
	if violations := s.passwordSvc.CheckStrength(newPassword); len(violations) > 0 {
		return domain.ErrWeakPassword
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.accountRepo.UpdatePasswordHash(ctx, accountID, hash)
}

// Profile implements domain.AuthService.
func (s *AuthServiceImpl) Profile(ctx context.Context, accountID uint) (*domain.Account, error) {
	return s.accountRepo.FindByID(ctx, accountID)
}

// audit appends a login-attempt record. Audit writes are best-effort: a
// failed insert never changes the authentication outcome.
func (s *AuthServiceImpl) audit(ctx context.Context, accountID uint, success bool, meta domain.RequestMeta) {
	if err := s.accountRepo.RecordLoginAttempt(ctx, accountID, success, meta); err != nil {
		log.Printf("AUDIT_WRITE_FAILED: account_id=%d success=%v error=%v", accountID, success, err)
	}
}

func (s *AuthServiceImpl) issuePair(account *domain.Account) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.IssueAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.IssueRefreshToken(account)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return &domain.AuthResult{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}
