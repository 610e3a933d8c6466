package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries every runtime knob the service reads from the environment.
// Loaded once in main and passed down; nothing else touches os.Getenv.
type Config struct {
	DatabaseURL       string
	RedisAddr         string
	RedisPassword     string
	AccessSecret      string
	AccessTokenExpiry time.Duration
	Port              string
	LogLevel          string
	AdminEmail        string
	AdminPassword     string
}

const defaultTokenExpiryMinutes = 30

func Load() Config {
	return Config{
		DatabaseURL:       getEnv("DATABASE_URL", "library.db"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		AccessSecret:      getEnv("ACCESS_SECRET", "your-secret-key-change-in-production"),
		AccessTokenExpiry: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", defaultTokenExpiryMinutes)) * time.Minute,
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "debug"),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
