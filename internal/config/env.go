// Package config provides centralized configuration management.
// All DOCCHAT_* environment lookups live here.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// DefaultServerURL is the hosted backend used when no override is set.
const DefaultServerURL = "https://multi-pdf-rag.onrender.com"

// Env holds all docchat environment variables.
type Env struct {
	// ServerURL is the remote document-QA service base URL (DOCCHAT_SERVER_URL)
	ServerURL string

	// SessionKey selects the persisted conversation slot (DOCCHAT_SESSION_KEY)
	SessionKey string

	// HistoryWindow is the number of prior turns sent with each question
	// (DOCCHAT_HISTORY_WINDOW)
	HistoryWindow int

	// SingleFlight rejects a second ask/summarize while one is in flight
	// (DOCCHAT_SINGLE_FLIGHT)
	SingleFlight bool

	// TimeoutSecs bounds each remote call (DOCCHAT_TIMEOUT_SECS)
	TimeoutSecs int

	// DataDir overrides the default data directory (DOCCHAT_DATA_DIR)
	DataDir string
}

var (
	env     *Env
	envOnce sync.Once
)

// Get returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Get() *Env {
	envOnce.Do(func() {
		env = &Env{
			ServerURL:     getEnvDefault("DOCCHAT_SERVER_URL", DefaultServerURL),
			SessionKey:    getEnvDefault("DOCCHAT_SESSION_KEY", "default"),
			HistoryWindow: getEnvInt("DOCCHAT_HISTORY_WINDOW", 6),
			SingleFlight:  os.Getenv("DOCCHAT_SINGLE_FLIGHT") == "1",
			TimeoutSecs:   getEnvInt("DOCCHAT_TIMEOUT_SECS", 60),
			DataDir:       os.Getenv("DOCCHAT_DATA_DIR"),
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// Paths holds standard docchat directory paths.
type Paths struct {
	// Home is the docchat home directory (~/.docchat)
	Home string

	// Database is the session database path (~/.docchat/docchat.db)
	Database string
}

var (
	paths     *Paths
	pathsOnce sync.Once
)

// GetPaths returns the singleton paths configuration.
func GetPaths() *Paths {
	pathsOnce.Do(func() {
		base := Get().DataDir
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				home = "."
			}
			base = filepath.Join(home, ".docchat")
		}

		paths = &Paths{
			Home:     base,
			Database: filepath.Join(base, "docchat.db"),
		}
	})
	return paths
}

// ResetPaths resets the cached paths (for testing).
func ResetPaths() {
	pathsOnce = sync.Once{}
	paths = nil
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
