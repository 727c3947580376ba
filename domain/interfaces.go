package domain

import (
	"context"
	"time"
)

// AccountRepository defines credential-store access for accounts and their
// login audit trail.
type AccountRepository interface {
	// Create persists the account and its empty profile in one unit of work.
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// FindByID loads the account with its role and profile joined.
	FindByID(ctx context.Context, id uint) (*Account, error)
	UpdatePasswordHash(ctx context.Context, accountID uint, newHash string) error
	SetState(ctx context.Context, accountID uint, state AccountState) error
	// RecordLoginAttempt appends one audit record. Records are never
	// mutated or deleted by application flow.
	RecordLoginAttempt(ctx context.Context, accountID uint, success bool, meta RequestMeta) error
	ListLoginAttempts(ctx context.Context, accountID uint, limit int) ([]LoginAttempt, error)
}

// RoleRepository defines role persistence.
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id uint) (*Role, error)
	FindByName(ctx context.Context, name RoleName) (*Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, role *Role) error
	// Delete fails with ErrRoleInUse while any account references the role.
	Delete(ctx context.Context, id uint) error
}

// PasswordService defines one-way hashing and the strength policy.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	// CheckStrength returns every violated rule, not just the first.
	CheckStrength(password string) []string
}

// TokenService issues and verifies the two token kinds. Signing and
// verification are pure CPU work and never block.
type TokenService interface {
	IssueAccessToken(account *Account) (string, error)
	IssueRefreshToken(account *Account) (string, error)
	Verify(token string, kind TokenKind) (*TokenClaims, error)
	// DecodeUnverified is for diagnostics only, never for authorization.
	DecodeUnverified(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
}

// AuthService defines the authentication business logic.
type AuthService interface {
	Register(ctx context.Context, reg Registration, meta RequestMeta) (*AuthResult, error)
	Login(ctx context.Context, email, password string, meta RequestMeta) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ChangePassword(ctx context.Context, accountID uint, oldPassword, newPassword string) error
	Profile(ctx context.Context, accountID uint) (*Account, error)
}

// Registration is the payload accepted by AuthService.Register.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      RoleName
}

// AccountService defines administrative account and role operations.
type AccountService interface {
	SetState(ctx context.Context, accountID uint, state AccountState) error
	LoginHistory(ctx context.Context, accountID uint, limit int) ([]LoginAttempt, error)
	CreateRole(ctx context.Context, role *Role) error
	ListRoles(ctx context.Context) ([]Role, error)
	UpdateRole(ctx context.Context, role *Role) error
	DeleteRole(ctx context.Context, id uint) error
}
