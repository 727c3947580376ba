package app

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/internal/config"
	httpx "github.com/sibe/identity/internal/http"
	"github.com/sibe/identity/internal/http/handlers"
	"github.com/sibe/identity/internal/http/middleware"
	"github.com/sibe/identity/internal/obs"
)

// Run wires the identity service and serves it until the listener fails.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	obs.Init()

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.PasswordSvc)
	accountH := handlers.NewAccountHandlers(c.AccountSvc)
	roleH := handlers.NewRoleHandlers(c.AccountSvc)
	authMW := middleware.NewAuthMW(c.TokenSvc, c.AccountRepo, cfg.TrustForwardedHeaders)

	r := httpx.BuildRouter(httpx.RouterDeps{
		Auth:        authH,
		Accounts:    accountH,
		Roles:       roleH,
		AuthMW:      authMW,
		CORSOrigins: cfg.CORSOrigins,
	})

	addr := ":" + cfg.Port
	log.Printf("identity service listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
