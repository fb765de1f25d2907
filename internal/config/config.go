package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBDriver          string
	DBDSN             string
	LogLevel          string
	SubmitWorkerCount int
	SubmitQueueSize   int

	// Client-side settings used by cmd/play.
	ServerURL  string
	ScoresPath string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBDriver:          envOr("DB_DRIVER", "sqlite3"),
		DBDSN:             envOr("DB_DSN", "file:mathsprint.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		SubmitWorkerCount: envIntOr("SUBMIT_WORKER_COUNT", 1),
		SubmitQueueSize:   envIntOr("SUBMIT_QUEUE_SIZE", 16),
		ServerURL:         envOr("SERVER_URL", "http://localhost:8080"),
		ScoresPath:        envOr("SCORES_PATH", "mathsprint_scores.json"),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBDriver != "sqlite3" && c.DBDriver != "postgres" {
		return fmt.Errorf("DB_DRIVER must be sqlite3 or postgres, got %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN cannot be empty")
	}
	if c.SubmitWorkerCount <= 0 {
		return fmt.Errorf("SUBMIT_WORKER_COUNT must be positive")
	}
	if c.SubmitQueueSize <= 0 {
		return fmt.Errorf("SUBMIT_QUEUE_SIZE must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
