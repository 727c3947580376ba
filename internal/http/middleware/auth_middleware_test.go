package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/domain"
	"github.com/sibe/identity/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func verifiedAccount(state domain.AccountState) *domain.Account {
	return &domain.Account{
		ID:     7,
		Email:  "alice@example.com",
		State:  state,
		RoleID: 1,
		Role:   &domain.Role{ID: 1, Name: domain.RoleClient},
	}
}

// tokenServiceFor accepts exactly one access token string.
func tokenServiceFor(valid string) *mocks.MockTokenService {
	svc := mocks.NewMockTokenService()
	svc.VerifyFunc = func(token string, kind domain.TokenKind) (*domain.TokenClaims, error) {
		if kind != domain.TokenKindAccess {
			return nil, domain.ErrTokenInvalid
		}
		if token != valid {
			return nil, domain.ErrTokenInvalid
		}
		return &domain.TokenClaims{AccountID: 7, Email: "alice@example.com", Role: domain.RoleClient}, nil
	}
	return svc
}

func newTestRouter(mw *AuthMW) *gin.Engine {
	r := gin.New()
	r.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"account_id": identity.AccountID, "role": identity.Role})
	})
	r.GET("/open", mw.OptionalAuth(), func(c *gin.Context) {
		if identity, ok := IdentityFrom(c); ok {
			c.JSON(http.StatusOK, gin.H{"account_id": identity.AccountID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		state      domain.AccountState
		wantStatus int
		wantBody   string
	}{
		{"valid token active account", "Bearer good-token", domain.StateActive, http.StatusOK, `"account_id":7`},
		{"missing header", "", domain.StateActive, http.StatusUnauthorized, "missing authentication token"},
		{"malformed header", "Token good-token", domain.StateActive, http.StatusUnauthorized, "missing authentication token"},
		{"invalid token", "Bearer bad-token", domain.StateActive, http.StatusUnauthorized, "invalid token"},
		{"suspended account with valid token", "Bearer good-token", domain.StateSuspended, http.StatusUnauthorized, "account is not active"},
		{"inactive account with valid token", "Bearer good-token", domain.StateInactive, http.StatusUnauthorized, "account is not active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := mocks.NewMockAccountRepository()
			accountRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Account, error) {
				return verifiedAccount(tt.state), nil
			}
			mw := NewAuthMW(tokenServiceFor("good-token"), accountRepo, false)
			router := newTestRouter(mw)

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if body := w.Body.String(); !contains(body, tt.wantBody) {
				t.Errorf("body %q does not contain %q", body, tt.wantBody)
			}
		})
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.VerifyFunc = func(token string, kind domain.TokenKind) (*domain.TokenClaims, error) {
		return nil, domain.ErrTokenExpired
	}
	mw := NewAuthMW(tokenSvc, mocks.NewMockAccountRepository(), false)
	router := newTestRouter(mw)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	// Expired is reported distinctly so clients know to try a refresh.
	if !contains(w.Body.String(), "token expired") {
		t.Errorf("body %q does not mention expiry", w.Body.String())
	}
}

func TestOptionalAuth(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Account, error) {
		return verifiedAccount(domain.StateActive), nil
	}
	mw := NewAuthMW(tokenServiceFor("good-token"), accountRepo, false)
	router := newTestRouter(mw)

	// Without a token the route still serves, anonymously.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/open", nil))
	if w.Code != http.StatusOK || !contains(w.Body.String(), "anonymous") {
		t.Errorf("anonymous request: status %d body %s", w.Code, w.Body.String())
	}

	// An invalid token is swallowed, not surfaced.
	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !contains(w.Body.String(), "anonymous") {
		t.Errorf("invalid token request: status %d body %s", w.Code, w.Body.String())
	}

	// A valid token attaches the identity.
	req = httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !contains(w.Body.String(), `"account_id":7`) {
		t.Errorf("valid token request: status %d body %s", w.Code, w.Body.String())
	}
}

func TestForwardedHeadersIgnoredByDefault(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Account, error) {
		return verifiedAccount(domain.StateActive), nil
	}
	mw := NewAuthMW(tokenServiceFor("good-token"), accountRepo, false)
	router := newTestRouter(mw)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(HeaderUserID, "7")
	req.Header.Set(HeaderUserRole, "administrator")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("forwarded headers must not authenticate by default, got %d", w.Code)
	}
}

func TestForwardedHeadersTrustedBoundary(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Account, error) {
		if id != 7 {
			return nil, domain.ErrAccountNotFound
		}
		return verifiedAccount(domain.StateActive), nil
	}
	mw := NewAuthMW(tokenServiceFor("good-token"), accountRepo, true)
	router := newTestRouter(mw)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(HeaderUserID, "7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("trusted forwarded header rejected: %d %s", w.Code, w.Body.String())
	}

	// The account state is still re-checked even on the fast path.
	accountRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Account, error) {
		return verifiedAccount(domain.StateSuspended), nil
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("suspended account passed the fast path: %d", w.Code)
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
