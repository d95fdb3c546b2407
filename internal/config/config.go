package config

import (
	"os"
	"strconv"
	"time"
)

// TenantConfig holds the connection settings for one vertical's database.
type TenantConfig struct {
	Tag string
	DSN string
}

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	Tenants     []TenantConfig // fixed search order: lead, cpa, prop
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	// MemoryCacheSize bounds the in-memory store used when Redis is unreachable.
	MemoryCacheSize int
	JWTSecret       string
	SwaggerHost     string

	// Inference API settings.
	AIEndpoint    string
	AIKey         string
	AIModel       string
	AIMaxTokens   int
	AITemperature float64
	AITimeout     time.Duration
	AICacheTTL    time.Duration

	// Login rate limiting.
	MaxLoginAttempts int
	LockoutWindow    time.Duration
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Tenants: []TenantConfig{
			{Tag: "lead", DSN: getEnv("LEAD_MYSQL_DSN", "user:password@tcp(localhost:3306)/lead?charset=utf8mb4&parseTime=True&loc=Local")},
			{Tag: "cpa", DSN: getEnv("CPA_MYSQL_DSN", "user:password@tcp(localhost:3306)/cpa?charset=utf8mb4&parseTime=True&loc=Local")},
			{Tag: "prop", DSN: getEnv("PROP_MYSQL_DSN", "user:password@tcp(localhost:3306)/prop?charset=utf8mb4&parseTime=True&loc=Local")},
		},
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		MemoryCacheSize: getEnvInt("MEMORY_CACHE_SIZE", 1024),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),

		AIEndpoint:    getEnv("AI_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		AIKey:         os.Getenv("AI_API_KEY"),
		AIModel:       getEnv("AI_MODEL", "deepseek-chat"),
		AIMaxTokens:   getEnvInt("AI_MAX_TOKENS", 1500),
		AITemperature: getEnvFloat("AI_TEMPERATURE", 0.7),
		AITimeout:     getEnvDuration("AI_TIMEOUT", 30*time.Second),
		AICacheTTL:    getEnvDuration("AI_CACHE_TTL", 5*time.Minute),

		MaxLoginAttempts: getEnvInt("MAX_LOGIN_ATTEMPTS", 3),
		LockoutWindow:    getEnvDuration("LOCKOUT_WINDOW", 15*time.Minute),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
