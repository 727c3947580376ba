package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	AccessIssuer  string `yaml:"access_issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshSecret string `yaml:"refresh_secret"`
	RefreshIssuer string `yaml:"refresh_issuer"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type AuthConfig struct {
	BcryptCost            int  `yaml:"bcrypt_cost"`
	TrustForwardedHeaders bool `yaml:"trust_forwarded_headers"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

type configFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
}

// Config is the immutable process-lifetime configuration of the identity
// service, built once at startup and passed into constructors.
type Config struct {
	Port                  string
	GinMode               string
	DSN                   string
	AccessSecret          string
	AccessIssuer          string
	AccessTTL             time.Duration
	RefreshSecret         string
	RefreshIssuer         string
	RefreshTTL            time.Duration
	BcryptCost            int
	TrustForwardedHeaders bool
	CORSOrigins           []string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads the identity-service config file and applies environment
// overrides. Environment variable names follow the platform's existing
// deployment conventions.
func Load() (*Config, error) {
	path := env("CONFIG_PATH", "config/config.yml")
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}

	accessTTL, err := parseTTL(env("JWT_EXPIRES_IN", file.JWT.AccessTTL), 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid access token TTL: %w", err)
	}
	refreshTTL, err := parseTTL(env("JWT_REFRESH_EXPIRES_IN", file.JWT.RefreshTTL), 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token TTL: %w", err)
	}

	cfg := &Config{
		Port:                  env("PORT", strconv.Itoa(file.App.Port)),
		GinMode:               env("GIN_MODE", file.App.GinMode),
		DSN:                   env("DATABASE_DSN", file.Database.DSN),
		AccessSecret:          env("JWT_SECRET", file.JWT.AccessSecret),
		AccessIssuer:          env("JWT_ISSUER", file.JWT.AccessIssuer),
		AccessTTL:             accessTTL,
		RefreshSecret:         env("JWT_REFRESH_SECRET", file.JWT.RefreshSecret),
		RefreshIssuer:         env("JWT_REFRESH_ISSUER", file.JWT.RefreshIssuer),
		RefreshTTL:            refreshTTL,
		BcryptCost:            envInt("BCRYPT_ROUNDS", file.Auth.BcryptCost),
		TrustForwardedHeaders: file.Auth.TrustForwardedHeaders,
		CORSOrigins:           splitOrigins(env("CORS_ORIGIN", ""), file.CORS.Origins),
	}

	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("jwt access secret is not configured")
	}
	// The refresh namespace falls back to the access secret; issuer
	// separation still keeps the two kinds from being interchangeable.
	if cfg.RefreshSecret == "" {
		cfg.RefreshSecret = cfg.AccessSecret
	}
	if cfg.AccessIssuer == "" {
		cfg.AccessIssuer = "sibe-user-service"
	}
	if cfg.RefreshIssuer == "" {
		cfg.RefreshIssuer = cfg.AccessIssuer + "/refresh"
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = 10
	}
	return cfg, nil
}

func loadConfigFile(path string) (*configFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var file configFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &file, nil
}

// parseTTL accepts Go duration strings and the day suffix used by the
// deployment environment ("7d").
func parseTTL(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("bad day duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func splitOrigins(envVal string, fromFile []string) []string {
	if envVal != "" {
		parts := strings.Split(envVal, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	if len(fromFile) > 0 {
		return fromFile
	}
	return []string{"http://localhost:5173", "http://localhost:3000"}
}
