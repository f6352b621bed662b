package orchestrator

import (
	"os"
	"time"
)

// Timeout constants for run orchestration
var (
	// DefaultRunTimeout bounds a full check or tag run
	DefaultRunTimeout = getTimeoutOrDefault("RUN_TIMEOUT", 10*time.Minute)
)

// Run modes recorded in reports and logs
const (
	ModeCheck = "check"
	ModeTag   = "tag"
)

// getTimeoutOrDefault returns the env-configured timeout or the default
func getTimeoutOrDefault(envVar string, fallback time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil {
			return duration
		}
	}
	return fallback
}
