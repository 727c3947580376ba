package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/domain"
)

// identityKey is the gin context key holding the verified identity.
const identityKey = "identity"

// Forwarded identity headers injected by the gateway after its own
// verification. They are hints, not proof: this service only accepts them
// when explicitly configured for a trusted network boundary.
const (
	HeaderUserID      = "x-user-id"
	HeaderUserRole    = "x-user-role"
	HeaderUserEmail   = "x-user-email"
	HeaderOrganizerID = "x-organizer-id"
)

// AuthMW is the per-request session gate: it extracts a bearer token,
// verifies it, re-checks the account's live state and attaches a verified
// identity to the request context.
type AuthMW struct {
	tokenSvc       domain.TokenService
	accountRepo    domain.AccountRepository
	trustForwarded bool
}

// NewAuthMW creates the session middleware. trustForwarded enables the
// gateway-header fast path and must only be set when the network path from
// the gateway to this service is itself trusted.
func NewAuthMW(tokenSvc domain.TokenService, accountRepo domain.AccountRepository, trustForwarded bool) *AuthMW {
	return &AuthMW{
		tokenSvc:       tokenSvc,
		accountRepo:    accountRepo,
		trustForwarded: trustForwarded,
	}
}

// authFailure is a rejected verification, surfaced as a structured 401.
type authFailure struct {
	message string
}

// authenticate is the single verification path shared by required and
// optional routes. It returns either a verified identity or the failure a
// required route should surface. The steps are strictly sequential: token
// verification, then the account-state re-check, then attachment.
func (mw *AuthMW) authenticate(c *gin.Context) (*domain.Identity, *authFailure) {
	accountID, failure := mw.principal(c)
	if failure != nil {
		return nil, failure
	}

	// Claims alone are not enough: the account can have been suspended
	// after the token was issued, and a stale token must not outlive that.
	account, err := mw.accountRepo.FindByID(c.Request.Context(), accountID)
	if err != nil {
		return nil, &authFailure{message: "account not found"}
	}
	if account.State != domain.StateActive {
		return nil, &authFailure{message: "account is not active"}
	}

	identity := &domain.Identity{
		AccountID: account.ID,
		Email:     account.Email,
		RoleID:    account.RoleID,
	}
	if account.Role != nil {
		identity.Role = account.Role.Name
	}
	return identity, nil
}

// principal determines the claimed account id, either from the bearer token
// or, when configured, from the gateway's forwarded headers.
func (mw *AuthMW) principal(c *gin.Context) (uint, *authFailure) {
	token, ok := bearerToken(c)
	if ok {
		claims, err := mw.tokenSvc.Verify(token, domain.TokenKindAccess)
		if err != nil {
			if err == domain.ErrTokenExpired {
				return 0, &authFailure{message: "token expired"}
			}
			return 0, &authFailure{message: "invalid token"}
		}
		return claims.AccountID, nil
	}

	if mw.trustForwarded {
		if raw := c.GetHeader(HeaderUserID); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return 0, &authFailure{message: "invalid forwarded identity"}
			}
			return uint(id), nil
		}
	}

	return 0, &authFailure{message: "missing authentication token"}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth rejects the request with a structured 401 unless verification
// succeeds.
func (mw *AuthMW) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, failure := mw.authenticate(c)
		if failure != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": failure.message,
			})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches an identity when verification succeeds and proceeds
// anonymously otherwise; no error ever reaches the caller.
func (mw *AuthMW) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, failure := mw.authenticate(c); failure == nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// IdentityFrom returns the verified identity attached by RequireAuth or
// OptionalAuth, if any.
func IdentityFrom(c *gin.Context) (*domain.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*domain.Identity)
	return identity, ok
}
