package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ADDR", "BACKEND", "DB_QUERY_TIMEOUT", "DASHBOARD_STEP_ATTEMPTS", "SURREAL_ACCESS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.GetAppAddr())
	assert.Equal(t, BackendSurreal, cfg.GetBackend())
	assert.Equal(t, "account", cfg.GetDBAccess())
	assert.Equal(t, 5*time.Second, cfg.GetDBQueryTimeout())
	assert.Equal(t, 1, cfg.GetDashboardStepAttempts())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("BACKEND", "MEMORY")
	t.Setenv("DB_QUERY_TIMEOUT", "2s")
	t.Setenv("DASHBOARD_STEP_ATTEMPTS", "3")
	t.Setenv("LOGIN_RATE_LIMIT", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, BackendMemory, cfg.GetBackend())
	assert.Equal(t, 2*time.Second, cfg.GetDBQueryTimeout())
	assert.Equal(t, 3, cfg.GetDashboardStepAttempts())
	assert.Equal(t, 10, cfg.GetLoginRateLimit(), "invalid values fall back to the default")
}

func TestValidate(t *testing.T) {
	t.Run("surreal requires connection settings", func(t *testing.T) {
		cfg := &Config{Backend: BackendSurreal, DBQueryTimeout: time.Second, DashboardStepAttempts: 1}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SURREAL_URL")
		assert.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("memory fills a development secret", func(t *testing.T) {
		cfg := &Config{Backend: BackendMemory, SeedFile: "seed.yaml", DBQueryTimeout: time.Second, DashboardStepAttempts: 1}
		require.NoError(t, cfg.Validate())
		assert.NotEmpty(t, cfg.GetSessionSecret())
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := &Config{Backend: "postgres"}
		assert.ErrorContains(t, cfg.Validate(), "unknown BACKEND")
	})

	t.Run("attempts must be positive", func(t *testing.T) {
		cfg := &Config{Backend: BackendMemory, SeedFile: "s.yaml", DBQueryTimeout: time.Second}
		assert.ErrorContains(t, cfg.Validate(), "DASHBOARD_STEP_ATTEMPTS")
	})
}
