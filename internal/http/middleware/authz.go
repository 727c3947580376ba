package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/domain"
)

// Authorization middleware. Evaluated after the session middleware has
// produced a verified identity; every failure here is a 403, distinct from
// the 401s of authentication, because the caller is known but lacks
// privilege and should not retry with the same credentials.

// RequireRole rejects identities whose role is not in the allowed set.
func RequireRole(allowed ...domain.RoleName) gin.HandlerFunc {
	allowedSet := make(map[domain.RoleName]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			forbidden(c, "authentication required")
			return
		}

		// The switch is exhaustive over the closed role set; an identity
		// carrying anything else never passes.
		switch identity.Role {
		case domain.RoleClient, domain.RoleOrganizer, domain.RoleAdministrator:
			if _, allowed := allowedSet[identity.Role]; allowed {
				c.Next()
				return
			}
		}
		forbidden(c, "insufficient role")
	}
}

// RequireAdmin is shorthand for administrator-only routes.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(domain.RoleAdministrator)
}

// RequireOrganizerOrAdmin is shorthand for organizer-scoped routes.
func RequireOrganizerOrAdmin() gin.HandlerFunc {
	return RequireRole(domain.RoleOrganizer, domain.RoleAdministrator)
}

// RequireSelfOrAdmin allows access when the path parameter names the
// caller's own account, or the caller is an administrator.
func RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			forbidden(c, "authentication required")
			return
		}
		if identity.IsAdmin() {
			c.Next()
			return
		}

		targetID, err := strconv.ParseUint(c.Param(param), 10, 32)
		if err != nil || uint(targetID) != identity.AccountID {
			forbidden(c, "you may only access your own resources")
			return
		}
		c.Next()
	}
}

func forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"message": message,
	})
}
