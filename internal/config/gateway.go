package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServicesConfig struct {
	Users     string `yaml:"users"`
	Events    string `yaml:"events"`
	Inventory string `yaml:"inventory"`
	Payments  string `yaml:"payments"`
}

type RateLimitConfig struct {
	PerSecond int `yaml:"per_second"`
	Burst     int `yaml:"burst"`
}

type gatewayFile struct {
	App       AppConfig       `yaml:"app"`
	JWT       JWTConfig       `yaml:"jwt"`
	Services  ServicesConfig  `yaml:"services"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// GatewayConfig is the immutable configuration of the API gateway. The
// gateway only ever needs the access-token verification half of the JWT
// configuration; it has no database and never issues tokens.
type GatewayConfig struct {
	Port         string
	GinMode      string
	AccessSecret string
	AccessIssuer string
	UserService  string
	EventService string
	InventorySvc string
	PaymentSvc   string
	CORSOrigins  []string
	RatePerSec   int
	RateBurst    int
}

// LoadGateway reads the gateway config file and applies environment
// overrides.
func LoadGateway() (*GatewayConfig, error) {
	path := env("GATEWAY_CONFIG_PATH", "config/gateway.yml")
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read gateway config at %s: %w", path, err)
	}

	var file gatewayFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse gateway config yaml: %w", err)
	}

	cfg := &GatewayConfig{
		Port:         env("PORT", strconv.Itoa(file.App.Port)),
		GinMode:      env("GIN_MODE", file.App.GinMode),
		AccessSecret: env("JWT_SECRET", file.JWT.AccessSecret),
		AccessIssuer: env("JWT_ISSUER", file.JWT.AccessIssuer),
		UserService:  env("USER_SERVICE_URL", file.Services.Users),
		EventService: env("EVENT_CATALOG_SERVICE_URL", file.Services.Events),
		InventorySvc: env("TICKET_INVENTORY_SERVICE_URL", file.Services.Inventory),
		PaymentSvc:   env("PAYMENT_SERVICE_URL", file.Services.Payments),
		CORSOrigins:  splitOrigins(env("CORS_ORIGIN", ""), file.CORS.Origins),
		RatePerSec:   file.RateLimit.PerSecond,
		RateBurst:    file.RateLimit.Burst,
	}

	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("jwt access secret is not configured")
	}
	if cfg.AccessIssuer == "" {
		cfg.AccessIssuer = "sibe-user-service"
	}
	if cfg.UserService == "" {
		cfg.UserService = "http://localhost:3001"
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 5
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 10
	}
	return cfg, nil
}
