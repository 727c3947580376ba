package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sibe/identity/internal/config"
	"github.com/sibe/identity/internal/gateway"
	"github.com/sibe/identity/internal/infrastructure/auth"
	"github.com/sibe/identity/internal/obs"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	obs.Init()

	// The gateway only verifies access tokens, so the refresh namespace is
	// configured but never exercised.
	tokenSvc := auth.NewJWTService(
		cfg.AccessSecret, cfg.AccessIssuer, 24*time.Hour,
		cfg.AccessSecret, cfg.AccessIssuer+"/refresh", 7*24*time.Hour,
	)

	r, err := gateway.BuildRouter(cfg, tokenSvc)
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("gateway listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("gateway: %v", err)
	}
}
