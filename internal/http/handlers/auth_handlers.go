package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sibe/identity/domain"
	"github.com/sibe/identity/internal/httpmeta"
)

// AuthHandlers handles the authentication endpoints.
type AuthHandlers struct {
	authSvc     domain.AuthService
	passwordSvc domain.PasswordService
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(authSvc domain.AuthService, passwordSvc domain.PasswordService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, passwordSvc: passwordSvc}
}

// RegisterRequest represents a registration payload. Self-registration is
// limited to the client and organizer roles.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role" binding:"omitempty,oneof=client organizer"`
}

// LoginRequest represents a login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	violations := bindJSON(c, &req)
	// Report every problem at once so the client can render all hints.
	if req.Password != "" {
		violations = append(violations, h.passwordSvc.CheckStrength(req.Password)...)
	}
	if len(violations) > 0 {
		validationFailed(c, violations)
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), domain.Registration{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.RoleName(req.Role),
	}, httpmeta.Extract(c.Request))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			fail(c, http.StatusConflict, "an account with this email already exists")
		case errors.Is(err, domain.ErrWeakPassword):
			validationFailed(c, h.passwordSvc.CheckStrength(req.Password))
		default:
			internalError(c, "registration failed", err)
		}
		return
	}

	ok(c, http.StatusCreated, "registration successful", authResultJSON(result))
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if violations := bindJSON(c, &req); len(violations) > 0 {
		validationFailed(c, violations)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, httpmeta.Extract(c.Request))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// Never reveals which half of the pair was wrong.
			fail(c, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, domain.ErrAccountNotActive):
			fail(c, http.StatusUnauthorized, "account is inactive or suspended, please contact support")
		default:
			internalError(c, "login failed", err)
		}
		return
	}

	ok(c, http.StatusOK, "login successful", authResultJSON(result))
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if violations := bindJSON(c, &req); len(violations) > 0 {
		validationFailed(c, violations)
		return
	}

	accessToken, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			fail(c, http.StatusUnauthorized, "refresh token expired")
		case errors.Is(err, domain.ErrTokenInvalid):
			fail(c, http.StatusUnauthorized, "invalid refresh token")
		case errors.Is(err, domain.ErrAccountNotActive):
			fail(c, http.StatusUnauthorized, "account is inactive or suspended, please contact support")
		default:
			internalError(c, "token refresh failed", err)
		}
		return
	}

	ok(c, http.StatusOK, "token refreshed", gin.H{"access_token": accessToken, "token_type": "Bearer"})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandlers) Profile(c *gin.Context) {
	identity := mustIdentity(c)
	if identity == nil {
		return
	}

	account, err := h.authSvc.Profile(c.Request.Context(), identity.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			fail(c, http.StatusNotFound, "account not found")
			return
		}
		internalError(c, "failed to load profile", err)
		return
	}

	ok(c, http.StatusOK, "profile loaded", gin.H{"account": accountJSON(account)})
}

// ChangePassword handles POST /api/auth/password.
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	identity := mustIdentity(c)
	if identity == nil {
		return
	}

	var req ChangePasswordRequest
	violations := bindJSON(c, &req)
	if req.NewPassword != "" {
		violations = append(violations, h.passwordSvc.CheckStrength(req.NewPassword)...)
	}
	if len(violations) > 0 {
		validationFailed(c, violations)
		return
	}

	err := h.authSvc.ChangePassword(c.Request.Context(), identity.AccountID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			fail(c, http.StatusUnauthorized, "current password is incorrect")
		case errors.Is(err, domain.ErrWeakPassword):
			validationFailed(c, h.passwordSvc.CheckStrength(req.NewPassword))
		default:
			internalError(c, "password change failed", err)
		}
		return
	}

	ok(c, http.StatusOK, "password changed", nil)
}

// Logout handles POST /api/auth/logout. Tokens are stateless: the server
// has nothing to invalidate, the client discards its copy.
func (h *AuthHandlers) Logout(c *gin.Context) {
	ok(c, http.StatusOK, "logged out, please discard the token client-side", nil)
}

// bindJSON collects every binding violation instead of stopping at the
// first.
func bindJSON(c *gin.Context, obj interface{}) []string {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		violations := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			violations = append(violations, fieldViolation(fe))
		}
		return violations
	}
	return []string{"request body is not valid JSON"}
}

func fieldViolation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
