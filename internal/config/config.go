// Package config centralizes environment-driven settings for the engine's
// thin HTTP surface. It loads a local .env file (if present) before
// falling back to the process environment, the same two-step lookup the
// teacher's cmd/engine/main.go performed inline.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting the server needs.
type Config struct {
	Port            string
	DatabaseURL     string
	APIAuthToken    string
	AllowedOrigins  string
	HistoryEnabled  bool
}

// Load reads a .env file if present, then resolves settings from the
// environment. Missing optional settings fall back to safe defaults;
// DatabaseURL is the only setting whose absence disables a whole feature
// (history persistence) rather than substituting a default.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment only")
	}

	dbURL := os.Getenv("DATABASE_URL")

	return Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		DatabaseURL:    dbURL,
		APIAuthToken:   os.Getenv("API_AUTH_TOKEN"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		HistoryEnabled: dbURL != "",
	}
}

func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
