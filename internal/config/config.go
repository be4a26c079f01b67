package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

const devJWTSecret = "dev-only-jwt-secret-change-me"

type Config struct {
	AppEnv   string
	HTTP     HTTPConfig
	JWT      JWTConfig
	Database database.Config
	Logger   utilities.Config
	// BcryptCost is the work factor used for new password hashes.
	BcryptCost int
}

type HTTPConfig struct {
	Addr        string
	CORSOrigins []string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// Load builds the service configuration from the environment. Outside the
// dev environment a missing JWT_SECRET is an error.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "dev"),
		HTTP: HTTPConfig{
			Addr:        getEnv("HTTP_ADDR", "0.0.0.0:8431"),
			CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    getEnvDuration("JWT_TTL", 24*time.Hour),
		},
		Database:   database.ConfigFromEnv(),
		Logger:     utilities.ConfigFromEnv(),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),
	}
	if cfg.JWT.Secret == "" {
		if cfg.AppEnv != "dev" {
			return nil, errors.New("JWT_SECRET must be set")
		}
		cfg.JWT.Secret = devJWTSecret
	}
	if cfg.JWT.TTL <= 0 {
		return nil, errors.New("JWT_TTL must be positive")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cfg, nil
}

// UsesDevSecret reports whether the built-in development JWT secret is active.
func (c *Config) UsesDevSecret() bool { return c.JWT.Secret == devJWTSecret }

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
