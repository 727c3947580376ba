package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sibe/identity/domain"
)

// namespace holds the signing configuration of one token kind. Access and
// refresh namespaces use distinct issuer strings (and usually distinct
// secrets), so a token of one kind never verifies as the other.
type namespace struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// JWTServiceImpl implements domain.TokenService with HMAC-signed JWTs.
type JWTServiceImpl struct {
	access  namespace
	refresh namespace
}

// NewJWTService creates a token service with namespace-distinct access and
// refresh configuration.
func NewJWTService(accessSecret, accessIssuer string, accessTTL time.Duration,
	refreshSecret, refreshIssuer string, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		access:  namespace{secret: []byte(accessSecret), issuer: accessIssuer, ttl: accessTTL},
		refresh: namespace{secret: []byte(refreshSecret), issuer: refreshIssuer, ttl: refreshTTL},
	}
}

// generateJTI creates a unique JWT ID so two tokens issued in the same
// second still differ.
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// AccessTTL implements domain.TokenService.
func (j *JWTServiceImpl) AccessTTL() time.Duration {
	return j.access.ttl
}

// IssueAccessToken implements domain.TokenService. Access claims carry the
// full identity snapshot so downstream authorization checks avoid a
// database round-trip; organizer accounts additionally get an organizer_id
// alias of the account id.
func (j *JWTServiceImpl) IssueAccessToken(account *domain.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"account_id": account.ID,
		"email":      account.Email,
		"role_id":    account.RoleID,
		"iss":        j.access.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(j.access.ttl).Unix(),
		"jti":        j.generateJTI(),
	}
	if account.Role != nil {
		claims["role"] = string(account.Role.Name)
	}
	if account.IsOrganizer() {
		claims["organizer_id"] = account.ID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.access.secret)
}

// IssueRefreshToken implements domain.TokenService. Refresh claims are
// deliberately minimal so a leaked long-lived token discloses less.
func (j *JWTServiceImpl) IssueRefreshToken(account *domain.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"account_id": account.ID,
		"role_id":    account.RoleID,
		"iss":        j.refresh.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(j.refresh.ttl).Unix(),
		"jti":        j.generateJTI(),
	}
	if account.IsOrganizer() {
		claims["organizer_id"] = account.ID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.refresh.secret)
}

// Verify implements domain.TokenService. Signature, expiry and issuer are
// all checked against the namespace of the expected kind.
func (j *JWTServiceImpl) Verify(tokenString string, kind domain.TokenKind) (*domain.TokenClaims, error) {
	ns := j.access
	if kind == domain.TokenKindRefresh {
		ns = j.refresh
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return ns.secret, nil
	}, jwt.WithIssuer(ns.issuer), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return extractClaims(mapClaims)
}

// DecodeUnverified implements domain.TokenService. The signature is not
// checked; callers must never use the result for authorization decisions.
func (j *JWTServiceImpl) DecodeUnverified(tokenString string) (*domain.TokenClaims, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return extractClaims(mapClaims)
}

func extractClaims(claims jwt.MapClaims) (*domain.TokenClaims, error) {
	accountID, ok := claims["account_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.TokenClaims{AccountID: uint(accountID)}

	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if roleID, ok := claims["role_id"].(float64); ok {
		out.RoleID = uint(roleID)
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = domain.RoleName(role)
	}
	if organizerID, ok := claims["organizer_id"].(float64); ok {
		out.OrganizerID = uint(organizerID)
	}
	if iat, ok := claims["iat"].(float64); ok {
		out.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = int64(exp)
	}
	return out, nil
}
