package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/envisionar/portal/internal/config"
	"github.com/envisionar/portal/internal/logging"
	"github.com/joho/godotenv"
)

// SurrealConfigForTests returns a surreal-backed configuration for tests that
// need a live SurrealDB. Variables from .env.test at the project root are
// applied when the file exists. The test is skipped in -short mode or when
// SURREAL_URL is not set.
func SurrealConfigForTests(t *testing.T) *config.Config {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping live SurrealDB test in -short mode")
	}

	if root, ok := projectRoot(); ok {
		if env, err := godotenv.Read(filepath.Join(root, ".env.test")); err == nil {
			for key, value := range env {
				t.Setenv(key, value)
			}
		}
	}

	if os.Getenv("SURREAL_URL") == "" {
		t.Skip("SURREAL_URL not set; skipping live SurrealDB test")
	}

	logging.New()

	cfg := config.FromEnv()
	cfg.Backend = config.BackendSurreal
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "test-session-secret"
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test configuration: %v", err)
	}
	return cfg
}

// projectRoot walks up from the working directory to the directory holding go.mod.
func projectRoot() (string, bool) {
	path, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path, true
		}
		if path == filepath.Dir(path) {
			return "", false
		}
		path = filepath.Dir(path)
	}
}
