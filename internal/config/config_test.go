package config_test

import (
	"testing"

	"jobdeck/board-client/internal/config"
)

func TestLoad_RequiresAPIURL(t *testing.T) {
	t.Setenv("JOBDECK_API_URL", "")
	if _, err := config.Load(); err == nil {
		t.Error("Load without JOBDECK_API_URL expected error, got nil")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JOBDECK_API_URL", "http://localhost:8000/api")
	t.Setenv("JOBDECK_STATE_FILE", "/tmp/jobdeck-test/session.json")
	t.Setenv("WATCH_INTERVAL_MINUTES", "")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("JOBDECK_SESSION_BACKEND", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WatchIntervalMinutes != 30 {
		t.Errorf("WatchIntervalMinutes = %d, want 30", cfg.WatchIntervalMinutes)
	}
	if cfg.HTTPTimeoutSeconds != 15 {
		t.Errorf("HTTPTimeoutSeconds = %d, want 15", cfg.HTTPTimeoutSeconds)
	}
	if cfg.SessionBackend != "file" {
		t.Errorf("SessionBackend = %q, want file", cfg.SessionBackend)
	}
}

func TestLoad_RejectsBadInterval(t *testing.T) {
	t.Setenv("JOBDECK_API_URL", "http://localhost:8000/api")
	t.Setenv("JOBDECK_STATE_FILE", "/tmp/jobdeck-test/session.json")
	for _, bad := range []string{"0", "-2", "soon"} {
		t.Setenv("WATCH_INTERVAL_MINUTES", bad)
		if _, err := config.Load(); err == nil {
			t.Errorf("Load with WATCH_INTERVAL_MINUTES=%q expected error", bad)
		}
	}
}

func TestLoad_RedisBackendNeedsRedisURL(t *testing.T) {
	t.Setenv("JOBDECK_API_URL", "http://localhost:8000/api")
	t.Setenv("JOBDECK_STATE_FILE", "/tmp/jobdeck-test/session.json")
	t.Setenv("JOBDECK_SESSION_BACKEND", "redis")
	t.Setenv("REDIS_URL", "")
	if _, err := config.Load(); err == nil {
		t.Error("redis backend without REDIS_URL expected error")
	}

	t.Setenv("REDIS_URL", "redis://localhost:6379")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SessionBackend != "redis" {
		t.Errorf("SessionBackend = %q, want redis", cfg.SessionBackend)
	}
}
