package gateway

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/domain"
	"github.com/sibe/identity/internal/http/middleware"
	"github.com/sibe/identity/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// edgeRouter echoes the identity headers the upstream would receive.
func edgeRouter(tokenSvc domain.TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/echo", EdgeAuth(tokenSvc, true), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":      c.Request.Header.Get(middleware.HeaderUserID),
			"user_role":    c.Request.Header.Get(middleware.HeaderUserRole),
			"user_email":   c.Request.Header.Get(middleware.HeaderUserEmail),
			"organizer_id": c.Request.Header.Get(middleware.HeaderOrganizerID),
		})
	})
	return r
}

func edgeTokenService() *mocks.MockTokenService {
	svc := mocks.NewMockTokenService()
	svc.VerifyFunc = func(token string, kind domain.TokenKind) (*domain.TokenClaims, error) {
		switch token {
		case "organizer-token":
			return &domain.TokenClaims{AccountID: 9, Email: "bob@example.com", Role: domain.RoleOrganizer, OrganizerID: 4}, nil
		case "client-token":
			return &domain.TokenClaims{AccountID: 7, Email: "alice@example.com", Role: domain.RoleClient}, nil
		case "stale-token":
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenInvalid
		}
	}
	return svc
}

func TestEdgeAuthInjectsVerifiedIdentity(t *testing.T) {
	r := edgeRouter(edgeTokenService())

	req := httptest.NewRequest("GET", "/echo", nil)
	req.Header.Set("Authorization", "Bearer client-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{`"user_id":"7"`, `"user_role":"client"`, `"user_email":"alice@example.com"`, `"organizer_id":""`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s does not contain %s", body, want)
		}
	}
}

func TestEdgeAuthInjectsOrganizerID(t *testing.T) {
	r := edgeRouter(edgeTokenService())

	req := httptest.NewRequest("GET", "/echo", nil)
	req.Header.Set("Authorization", "Bearer organizer-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), `"organizer_id":"4"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestEdgeAuthStripsSmuggledHeaders(t *testing.T) {
	r := edgeRouter(edgeTokenService())

	// No token at all: the smuggled headers must arrive empty upstream.
	req := httptest.NewRequest("GET", "/echo", nil)
	req.Header.Set(middleware.HeaderUserID, "1")
	req.Header.Set(middleware.HeaderUserRole, "administrator")
	req.Header.Set(middleware.HeaderUserEmail, "attacker@example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	for _, want := range []string{`"user_id":""`, `"user_role":""`, `"user_email":""`} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("smuggled header survived: %s", w.Body.String())
		}
	}
}

func TestEdgeAuthSmuggledHeadersReplacedByVerified(t *testing.T) {
	r := edgeRouter(edgeTokenService())

	req := httptest.NewRequest("GET", "/echo", nil)
	req.Header.Set("Authorization", "Bearer client-token")
	req.Header.Set(middleware.HeaderUserRole, "administrator")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), `"user_role":"client"`) {
		t.Errorf("verified role did not win: %s", w.Body.String())
	}
}

func TestEdgeAuthLenientDropsBadToken(t *testing.T) {
	r := gin.New()
	r.GET("/echo", EdgeAuth(edgeTokenService(), false), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"authorization": c.Request.Header.Get("Authorization"),
			"user_id":       c.Request.Header.Get(middleware.HeaderUserID),
		})
	})

	req := httptest.NewRequest("GET", "/echo", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// The stale token is dropped instead of rejected so the request can
	// still reach the login endpoint anonymously.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	for _, want := range []string{`"authorization":""`, `"user_id":""`} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("body %s does not contain %s", w.Body.String(), want)
		}
	}
}

func TestEdgeAuthRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		wantMessage string
	}{
		{"expired", "stale-token", "token expired"},
		{"garbage", "nonsense", "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := edgeRouter(edgeTokenService())
			req := httptest.NewRequest("GET", "/echo", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantMessage) {
				t.Errorf("body %s does not contain %q", w.Body.String(), tt.wantMessage)
			}
		})
	}
}
