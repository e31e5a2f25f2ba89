package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the process reads from the environment
type Config struct {
	Port              string
	APIBaseURL        string
	SessionCookie     string
	SessionCookieName string
	OAuthProvider     string
	Currency          string
	RequestTimeout    time.Duration
	RedisAddr         string
	RedisUser         string
	RedisPassword     string
	RefreshSchedule   string
	LogLevel          string
	LogDir            string
	AllowedOrigins    []string
}

// LoadEnv loads .env when present. A missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded, using the process environment: %v", err)
	}
}

// Load reads the configuration, falling back to the defaults for unset keys
func Load() Config {
	return Config{
		Port:              GetEnv("PORT", "8083"),
		APIBaseURL:        strings.TrimRight(GetEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		SessionCookie:     GetEnv("SESSION_COOKIE", ""),
		SessionCookieName: GetEnv("SESSION_COOKIE_NAME", "JSESSIONID"),
		OAuthProvider:     GetEnv("OAUTH_PROVIDER", "google"),
		Currency:          strings.ToUpper(GetEnv("CURRENCY", "USD")),
		RequestTimeout:    getDuration("REQUEST_TIMEOUT", 10*time.Second),
		RedisAddr:         GetEnv("REDIS_ADDR", ""),
		RedisUser:         GetEnv("REDIS_USER", ""),
		RedisPassword:     GetEnv("REDIS_PASSWORD", ""),
		RefreshSchedule:   GetEnv("REFRESH_SCHEDULE", "@every 1m"),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		LogDir:            GetEnv("LOG_DIR", ""),
		AllowedOrigins:    splitList(GetEnv("ALLOWED_ORIGINS", "")),
	}
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// getDuration accepts Go durations ("15s") or plain seconds ("15")
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Warning: invalid %s=%q, using %v", key, raw, fallback)
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
