package config

import (
	"os"
	"strconv"
)

// Config holds the runtime settings of the server.
type Config struct {
	Port         string
	DBPath       string
	AuthSecret   string // empty disables auth on mutating routes
	RateLimitRPM int    // requests per minute per client IP
}

// Load reads configuration from the environment, falling back to defaults
// suited to a single-user local install.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/visualimprints.db"
	}

	rateLimit := 120
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			rateLimit = parsed
		}
	}

	return &Config{
		Port:         port,
		DBPath:       dbPath,
		AuthSecret:   os.Getenv("AUTH_SECRET"),
		RateLimitRPM: rateLimit,
	}
}
