package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/domain"
	"github.com/sibe/identity/internal/http/middleware"
)

// Every endpoint answers with the same envelope: a success flag, a human
// readable message and an optional data payload. Validation failures add an
// errors list carrying every violation at once.

func ok(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func validationFailed(c *gin.Context, violations []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "validation failed",
		"errors":  violations,
	})
}

func internalError(c *gin.Context, message string, err error) {
	log.Printf("ERROR: %s: %v", message, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
}

// mustIdentity returns the verified identity or writes a 401 and returns
// nil. Handlers behind RequireAuth should never hit the failure branch.
func mustIdentity(c *gin.Context) *domain.Identity {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "authentication required")
		return nil
	}
	return identity
}

// accountJSON serializes an account for API responses. The password hash
// never leaves the service.
func accountJSON(account *domain.Account) gin.H {
	body := gin.H{
		"id":         account.ID,
		"email":      account.Email,
		"first_name": account.FirstName,
		"last_name":  account.LastName,
		"state":      account.State,
		"created_at": account.CreatedAt,
	}
	if account.Role != nil {
		body["role"] = gin.H{"id": account.Role.ID, "name": account.Role.Name}
	}
	if account.Profile != nil {
		body["profile"] = gin.H{
			"phone":   account.Profile.Phone,
			"address": account.Profile.Address,
			"city":    account.Profile.City,
			"country": account.Profile.Country,
			"locale":  account.Profile.Locale,
		}
	}
	return body
}

func authResultJSON(result *domain.AuthResult) gin.H {
	return gin.H{
		"account":       accountJSON(result.Account),
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    result.ExpiresIn,
	}
}
