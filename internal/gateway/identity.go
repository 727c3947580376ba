package gateway

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/domain"
	"github.com/sibe/identity/internal/http/middleware"
)

// EdgeAuth is the trust-propagation gate. On every request it first strips
// any identity headers the client tried to smuggle in, then, when a bearer
// token is presented, verifies it and injects the identity headers for the
// upstream. Headers downstream therefore only ever originate here.
//
// With enforce set, a failed verification is rejected at the edge. Without
// it the bad Authorization header is dropped and the request proxies
// anonymously, so a client holding a stale token can still reach the
// credential endpoints and log in again.
func EdgeAuth(tokenSvc domain.TokenService, enforce bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		stripIdentityHeaders(c.Request)

		token, ok := bearer(c.Request)
		if !ok {
			// Anonymous pass-through; the upstream decides whether the
			// route requires authentication.
			c.Next()
			return
		}

		claims, err := tokenSvc.Verify(token, domain.TokenKindAccess)
		if err != nil {
			if !enforce {
				c.Request.Header.Del("Authorization")
				c.Next()
				return
			}
			message := "invalid token"
			if errors.Is(err, domain.ErrTokenExpired) {
				message = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": message,
			})
			return
		}

		c.Request.Header.Set(middleware.HeaderUserID, strconv.FormatUint(uint64(claims.AccountID), 10))
		c.Request.Header.Set(middleware.HeaderUserRole, string(claims.Role))
		c.Request.Header.Set(middleware.HeaderUserEmail, claims.Email)
		if claims.OrganizerID != 0 {
			c.Request.Header.Set(middleware.HeaderOrganizerID, strconv.FormatUint(uint64(claims.OrganizerID), 10))
		}
		c.Next()
	}
}

func stripIdentityHeaders(r *http.Request) {
	r.Header.Del(middleware.HeaderUserID)
	r.Header.Del(middleware.HeaderUserRole)
	r.Header.Del(middleware.HeaderUserEmail)
	r.Header.Del(middleware.HeaderOrganizerID)
}

func bearer(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
