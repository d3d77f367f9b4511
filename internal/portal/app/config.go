package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer          string        // Issuer label shown in authenticator apps (default: arcade-portal)
	DatabaseFile    string        // Path to SQLite database file (default: ./portal.db)
	PepperFile      string        // Path to file containing pepper for password hashing (default: ./pepper)
	AdminIdentifier string        // Identifier for the bootstrap admin account (default: admin)
	AdminPassword   string        // Password for the bootstrap admin; only used on a fresh database
	SessionTTL      time.Duration // Session lifetime (default: 720h = 30 days)
	PendingTTL      time.Duration // How long a pending second factor login stays valid (default: 5m)
	CookieSecure    bool          // Set the Secure flag on auth cookies (default: false for dev)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired session sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:          getEnvOrDefault("PORTAL_ISSUER", "arcade-portal"),
		DatabaseFile:    getEnvOrDefault("PORTAL_DATABASE_FILE", "portal.db"),
		PepperFile:      getEnvOrDefault("PORTAL_PEPPER_FILE", "pepper"),
		AdminIdentifier: getEnvOrDefault("PORTAL_ADMIN_IDENTIFIER", "admin"),
		AdminPassword:   os.Getenv("PORTAL_ADMIN_PASSWORD"), // Optional: no bootstrap when unset
		SessionTTL:      getEnvDurationOrDefault("PORTAL_SESSION_TTL", 30*24*time.Hour),
		PendingTTL:      getEnvDurationOrDefault("PORTAL_PENDING_TTL", 5*time.Minute),
		CookieSecure:    getEnvOrDefault("PORTAL_COOKIE_SECURE", "false") == "true",

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Duration strings first (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
