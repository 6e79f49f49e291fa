package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	RedisAddr     string
	RedisPassword string

	JWTSecret     string
	JWTTTLMinutes time.Duration

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryEnabled bool

	RateLimitLike time.Duration
	RateLimitChat time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryEnabled: os.Getenv("CLOUDINARY_URL") != "",
	}

	ttlMinutes := getEnv("JWT_TTL_MINUTES", "60")
	ttl, err := time.ParseDuration(ttlMinutes + "m")
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: %w", err)
	}
	cfg.JWTTTLMinutes = ttl

	cfg.RateLimitLike, err = time.ParseDuration(getEnv("RATE_LIMIT_LIKE", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LIKE: %w", err)
	}
	cfg.RateLimitChat, err = time.ParseDuration(getEnv("RATE_LIMIT_CHAT", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CHAT: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
