package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"
	defaultJWTTTL    = "24h"
)

// Config holds everything the server needs, loaded from the environment
// (with an optional .env file for local development).
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	BcryptCost int

	// EnforceBusinessHours makes bookings outside the tenant's open window
	// fail for non-admin callers. Admins may always override.
	EnforceBusinessHours bool

	CORSAllowedOrigins []string
}

// Load reads configuration from the environment and validates it.
// Prod-like environments refuse to start on a default JWT secret.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:               strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", "dev"))),
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          getEnv("DATABASE_URL", "karaoke.db"),
		JWTSecret:            strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		BcryptCost:           getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		EnforceBusinessHours: parseBoolEnv("ENFORCE_BUSINESS_HOURS", "true"),
		CORSAllowedOrigins:   splitTrim(getEnv("CORS_ALLOWED_ORIGINS", ""), ","),
	}

	ttl, err := time.ParseDuration(strings.TrimSpace(getEnv("JWT_TTL", defaultJWTTTL)))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

// IsProdLike reports whether the configured environment should run with
// release defaults.
func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func parseBoolEnv(name, fallback string) bool {
	v := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func splitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, sep) {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
