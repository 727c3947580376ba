package domain

import "time"

// RoleName is the closed set of roles known to the platform. Authorization
// decisions switch exhaustively over these values; adding a role is a
// compile-time-visible change.
type RoleName string

const (
	RoleClient        RoleName = "client"
	RoleOrganizer     RoleName = "organizer"
	RoleAdministrator RoleName = "administrator"
)

// Valid reports whether r is one of the known roles.
func (r RoleName) Valid() bool {
	switch r {
	case RoleClient, RoleOrganizer, RoleAdministrator:
		return true
	}
	return false
}

// AccountState is the lifecycle state gating authentication.
type AccountState string

const (
	StateActive    AccountState = "active"
	StateInactive  AccountState = "inactive"
	StateSuspended AccountState = "suspended"
	StateDeleted   AccountState = "deleted"
)

// Valid reports whether s is one of the known lifecycle states.
func (s AccountState) Valid() bool {
	switch s {
	case StateActive, StateInactive, StateSuspended, StateDeleted:
		return true
	}
	return false
}

// Role is a named capability bucket.
type Role struct {
	ID          uint
	Name        RoleName
	Description string
}

// Profile holds non-identity attributes, one-to-one with Account.
type Profile struct {
	ID        uint
	AccountID uint
	Phone     string
	Address   string
	City      string
	Country   string
	Locale    string
}

// Account is the identity record. PasswordHash never leaves the service.
type Account struct {
	ID           uint
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	State        AccountState
	RoleID       uint
	Role         *Role
	Profile      *Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOrganizer reports whether the account carries the organizer role.
func (a *Account) IsOrganizer() bool {
	return a.Role != nil && a.Role.Name == RoleOrganizer
}

// LoginAttempt is one append-only audit record of an authentication attempt
// against a known account.
type LoginAttempt struct {
	ID        uint
	AccountID uint
	IP        string
	Browser   string
	OS        string
	Device    string
	Success   bool
	CreatedAt time.Time
}

// RequestMeta carries the request attributes recorded in the login audit.
type RequestMeta struct {
	IP      string
	Browser string
	OS      string
	Device  string
}

// TokenKind distinguishes the two token classes. A token of one kind is
// never accepted where the other is expected.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims is the identity data embedded in a signed token. Email and
// Role are populated on access tokens only; refresh tokens carry the
// minimal set.
type TokenClaims struct {
	AccountID   uint
	Email       string
	RoleID      uint
	Role        RoleName
	OrganizerID uint
	IssuedAt    int64
	ExpiresAt   int64
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	Account      *Account
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Identity is the verified caller attached to a request context by the
// session middleware.
type Identity struct {
	AccountID uint
	Email     string
	RoleID    uint
	Role      RoleName
}

// IsAdmin reports whether the identity carries the administrator role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdministrator
}
