package gateway

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/domain"
	"github.com/sibe/identity/internal/config"
	"github.com/sibe/identity/internal/http/middleware"
	"github.com/sibe/identity/internal/obs"
)

// BuildRouter assembles the gateway. Every route passes through EdgeAuth,
// so identity headers reaching an upstream always originate from the
// gateway's own token verification. The credential endpoints additionally
// sit behind a per-IP rate limit.
func BuildRouter(cfg *config.GatewayConfig, tokenSvc domain.TokenService) (*gin.Engine, error) {
	users, err := newServiceProxy("users", cfg.UserService, "/auth", "/api/auth")
	if err != nil {
		return nil, fmt.Errorf("users proxy: %w", err)
	}
	accounts, err := newServiceProxy("users", cfg.UserService, "/accounts", "/api/accounts")
	if err != nil {
		return nil, fmt.Errorf("accounts proxy: %w", err)
	}
	roles, err := newServiceProxy("users", cfg.UserService, "/roles", "/api/roles")
	if err != nil {
		return nil, fmt.Errorf("roles proxy: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), obs.RequestLogger(), obs.Instrument(), middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})
	r.GET("/metrics", obs.Handler())

	edge := EdgeAuth(tokenSvc, true)
	limited := RateLimit(float64(cfg.RatePerSec), cfg.RateBurst)

	// The /auth routes take the lenient edge so a client with a stale
	// token can still log in again; the identity service enforces auth on
	// its own protected endpoints. The credential endpoints are throttled;
	// the rest of /auth is not. A single catch-all keeps the route tree
	// free of wildcard conflicts.
	creds := func(c *gin.Context) {
		if c.Request.Method == http.MethodPost {
			switch c.Param("path") {
			case "/login", "/register":
				limited(c)
				return
			}
		}
		c.Next()
	}
	r.Group("/auth", EdgeAuth(tokenSvc, false)).Any("/*path", creds, users.Handler())
	r.Any("/accounts/*path", edge, accounts.Handler())
	r.Any("/roles", edge, roles.Handler())
	r.Any("/roles/*path", edge, roles.Handler())

	// The other marketplace services hang off the same edge gate; they
	// trust the injected identity headers within the service network.
	mountUpstream(r, edge, "events", cfg.EventService, "/events", "/api/events")
	mountUpstream(r, edge, "inventory", cfg.InventorySvc, "/tickets", "/api/tickets")
	mountUpstream(r, edge, "payments", cfg.PaymentSvc, "/payments", "/api/payments")

	return r, nil
}

// mountUpstream wires an optional upstream; services without a configured
// URL answer 503 so the route surface stays stable across environments.
func mountUpstream(r *gin.Engine, edge gin.HandlerFunc, name, rawURL, publicPrefix, upstreamPrefix string) {
	if rawURL == "" {
		r.Any(publicPrefix+"/*path", edge, func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": name + " service is not configured",
			})
		})
		return
	}

	proxy, err := newServiceProxy(name, rawURL, publicPrefix, upstreamPrefix)
	if err != nil {
		panic(fmt.Sprintf("invalid %s service url %q: %v", name, rawURL, err))
	}
	r.Any(publicPrefix+"/*path", edge, proxy.Handler())
}
