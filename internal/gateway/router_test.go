package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sibe/identity/internal/config"
	"github.com/sibe/identity/internal/http/middleware"
)

type upstreamCapture struct {
	path    string
	headers http.Header
}

func gatewayFixture(t *testing.T) (*httptest.Server, *upstreamCapture, http.Handler) {
	t.Helper()
	capture := &upstreamCapture{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capture.path = r.URL.Path
		capture.headers = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.GatewayConfig{
		Port:        "3000",
		UserService: upstream.URL,
		RatePerSec:  1000,
		RateBurst:   1000,
	}
	router, err := BuildRouter(cfg, edgeTokenService())
	if err != nil {
		t.Fatalf("BuildRouter: %v", err)
	}
	return upstream, capture, router
}

func TestGatewayRewritesAuthPath(t *testing.T) {
	_, capture, router := gatewayFixture(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, withCancelableContext(t, httptest.NewRequest("POST", "/auth/login", nil)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if capture.path != "/api/auth/login" {
		t.Errorf("upstream path = %q, want /api/auth/login", capture.path)
	}
}

func TestGatewayPropagatesVerifiedIdentity(t *testing.T) {
	_, capture, router := gatewayFixture(t)

	req := withCancelableContext(t, httptest.NewRequest("GET", "/accounts/7/logins", nil))
	req.Header.Set("Authorization", "Bearer client-token")
	// A smuggled role header must not survive to the upstream.
	req.Header.Set(middleware.HeaderUserRole, "administrator")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if capture.path != "/api/accounts/7/logins" {
		t.Errorf("upstream path = %q", capture.path)
	}
	if got := capture.headers.Get(middleware.HeaderUserID); got != "7" {
		t.Errorf("x-user-id = %q, want 7", got)
	}
	if got := capture.headers.Get(middleware.HeaderUserRole); got != "client" {
		t.Errorf("x-user-role = %q, want client", got)
	}
	if got := capture.headers.Get(middleware.HeaderUserEmail); got != "alice@example.com" {
		t.Errorf("x-user-email = %q", got)
	}
}

func TestGatewayAnonymousPassThrough(t *testing.T) {
	_, capture, router := gatewayFixture(t)

	req := withCancelableContext(t, httptest.NewRequest("GET", "/accounts/7/logins", nil))
	req.Header.Set(middleware.HeaderUserID, "1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// The gateway forwards anonymously; the upstream enforces auth.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if got := capture.headers.Get(middleware.HeaderUserID); got != "" {
		t.Errorf("smuggled x-user-id survived: %q", got)
	}
}

func TestGatewayStaleTokenDoesNotBlockLogin(t *testing.T) {
	_, capture, router := gatewayFixture(t)

	req := withCancelableContext(t, httptest.NewRequest("POST", "/auth/login", nil))
	req.Header.Set("Authorization", "Bearer stale-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("re-login with a stale token blocked at the edge: %d (%s)", w.Code, w.Body.String())
	}
	if capture.path != "/api/auth/login" {
		t.Errorf("upstream path = %q", capture.path)
	}
	if got := capture.headers.Get("Authorization"); got != "" {
		t.Errorf("stale Authorization header forwarded: %q", got)
	}
}

func TestGatewayRejectsBadTokenAtEdge(t *testing.T) {
	_, _, router := gatewayFixture(t)

	req := withCancelableContext(t, httptest.NewRequest("GET", "/accounts/7/logins", nil))
	req.Header.Set("Authorization", "Bearer nonsense")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestGatewayUnconfiguredUpstream(t *testing.T) {
	_, _, router := gatewayFixture(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, withCancelableContext(t, httptest.NewRequest("GET", "/events/123", nil)))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 (%s)", w.Code, w.Body.String())
	}
}
