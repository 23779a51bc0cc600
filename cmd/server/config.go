package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is the server configuration read from the environment.
type Config struct {
	DatabaseURL string
	DBMaxConns  int
	DBMinConns  int

	JWTSecret    string
	JWTExpiresIn time.Duration

	Port     string
	AppEnv   string
	LogLevel string

	RedisAddress   string
	RedisPassword  string
	RedisDB        int
	ReportCacheTTL time.Duration

	CORSOrigins []string

	MailHost     string
	MailPort     int
	MailUser     string
	MailPassword string
	MailFrom     string
}

func loadConfig() Config {
	return Config{
		DatabaseURL: mustEnv("DATABASE_URL"),
		DBMaxConns:  getEnvInt("DB_MAX_CONNS", 10),
		DBMinConns:  getEnvInt("DB_MIN_CONNS", 2),

		JWTSecret:    mustEnv("JWT_SECRET"),
		JWTExpiresIn: getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour),

		Port:     getEnv("SERVER_PORT", "3000"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RedisAddress:   getEnv("REDIS_ADDRESS", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		ReportCacheTTL: getEnvDuration("REPORT_CACHE_TTL", time.Minute),

		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),

		MailHost:     getEnv("MAIL_HOST", "localhost"),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUser:     getEnv("MAIL_USER", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "noreply@example.com"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
