package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	DBUrl       string
	FrontendURL string
	// Additional CORS origins, comma-separated in the env
	AllowedOrigins []string
	// JWT Configuration
	JWTSecret   string
	JWTTTLHours int
	// SMTP Configuration (contact form notifications)
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitLoginThreshold   int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
	FailedLoginBlockMinutes   int
	FailedLoginMaxAttempts    int
	// GitHub listing integration
	GithubUsername    string
	GithubToken       string
	GithubAPIBaseURL  string
	GithubCacheTTLMin int
	GithubMaxRepos    int
	// Dashboard
	DashboardRecentSize int
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("APP_ENV", "development"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "")),
		// JWT Configuration
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 24),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", ""),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:   getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 5),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		FailedLoginBlockMinutes:   getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:    getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
		// GitHub listing integration
		GithubUsername:    getEnv("GITHUB_USERNAME", ""),
		GithubToken:       getEnv("GITHUB_TOKEN", ""),
		GithubAPIBaseURL:  getEnv("GITHUB_API_BASE_URL", "https://api.github.com"),
		GithubCacheTTLMin: getEnvInt("GITHUB_CACHE_TTL_MINUTES", 10),
		GithubMaxRepos:    getEnvInt("GITHUB_MAX_REPOS", 30),
		// Dashboard
		DashboardRecentSize: getEnvInt("DASHBOARD_RECENT_SIZE", 5),
	}

	// Warn early instead of failing mid-request
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Admin login will be unavailable.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, strings.TrimRight(trimmed, "/"))
		}
	}
	return out
}
