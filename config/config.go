package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	SupabaseUrl string
	SupabaseKey string
	// HS256 fallback secret for legacy Supabase projects; RS256 tokens are
	// verified via JWKS and do not need this.
	SupabaseJWTSecret string
	FrontendURL       string
	// Redis Configuration (rate limiting + role cache)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	// Developer-only diagnostic routes (/v1/dev/*). Off in production.
	EnableDevRoutes bool
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; ignored in production.
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Trailing slash would produce double slashes in GoTrue paths.
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:       getEnv("SUPABASE_KEY", getEnv("SUPABASE_ANON_KEY", "")),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),

		EnableDevRoutes: getEnvBool("ENABLE_DEV_ROUTES", false),
	}

	// The Supabase project URL and anon key are the two values nothing can
	// run without. Refusing to start beats failing on the first request.
	if cfg.SupabaseUrl == "" {
		return nil, errors.New("config: SUPABASE_URL is required")
	}
	if cfg.SupabaseKey == "" {
		return nil, errors.New("config: SUPABASE_KEY (or SUPABASE_ANON_KEY) is required")
	}
	if cfg.DBUrl == "" {
		return nil, errors.New("config: DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
