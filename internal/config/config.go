// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is malformed, the process exits.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the client.
type Config struct {
	APIBaseURL           string // job-board API root, e.g. http://localhost:8000/api
	StateFile            string // token state file (file-backed store)
	SessionBackend       string // "file" (default) or "redis"
	RedisURL             string // optional: shared token store + watch events
	DatabaseURL          string // optional: watch feed persistence
	WatchIntervalMinutes int    // how often the watcher re-runs saved searches
	HTTPTimeoutSeconds   int    // transport timeout
}

// Load reads a .env file when present, then the environment, and returns a
// validated Config.
func Load() (*Config, error) {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	apiURL := os.Getenv("JOBDECK_API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("JOBDECK_API_URL is required")
	}

	stateFile := os.Getenv("JOBDECK_STATE_FILE")
	if stateFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir for default state file: %w", err)
		}
		stateFile = filepath.Join(home, ".jobdeck", "session.json")
	}

	interval := 30
	if s := os.Getenv("WATCH_INTERVAL_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("WATCH_INTERVAL_MINUTES must be a positive integer, got %q", s)
		}
		interval = v
	}

	backend := os.Getenv("JOBDECK_SESSION_BACKEND")
	switch backend {
	case "":
		backend = "file"
	case "file", "redis":
	default:
		return nil, fmt.Errorf("JOBDECK_SESSION_BACKEND must be \"file\" or \"redis\", got %q", backend)
	}
	if backend == "redis" && os.Getenv("REDIS_URL") == "" {
		return nil, fmt.Errorf("JOBDECK_SESSION_BACKEND=redis requires REDIS_URL")
	}

	timeout := 15
	if s := os.Getenv("HTTP_TIMEOUT_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be a positive integer, got %q", s)
		}
		timeout = v
	}

	return &Config{
		APIBaseURL:           apiURL,
		StateFile:            stateFile,
		SessionBackend:       backend,
		RedisURL:             os.Getenv("REDIS_URL"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		WatchIntervalMinutes: interval,
		HTTPTimeoutSeconds:   timeout,
	}, nil
}
