// Package config загружает конфигурацию сервера из переменных окружения.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит конфигурацию всего приложения.
// Загружается один раз при старте и далее не меняется.
type Config struct {
	// JWT
	JWTSecret string        // секрет подписи токенов, обязателен
	TokenTTL  time.Duration // время жизни токена

	// Server
	ServerPort string
	DBPath     string

	// Environment: "production" или "development".
	// В development режиме детали внутренних ошибок попадают в ответ.
	AppEnv string

	// Rate limit
	RateLimit float64 // запросов в секунду на один IP
	RateBurst int

	// CORS
	CORSAllowedOrigin string
}

// Development сообщает, работает ли сервер в development режиме
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

// Load читает конфигурацию из переменных окружения.
// Отсутствие JWT_SECRET это фатальная ошибка старта, не per-request.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("required environment variable JWT_SECRET is not set")
	}

	cfg.TokenTTL = getEnvDuration("JWT_TTL", 24*time.Hour)
	cfg.ServerPort = getEnvString("SERVER_PORT", "3000")
	cfg.DBPath = getEnvString("DB_PATH", "terminplaner.db")
	cfg.AppEnv = getEnvString("APP_ENV", "production")
	cfg.RateLimit = getEnvFloat("RATE_LIMIT", 10)
	cfg.RateBurst = getEnvInt("RATE_BURST", 30)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "*")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
