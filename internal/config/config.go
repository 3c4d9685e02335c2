package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend kinds accepted by BACKEND.
const (
	BackendSurreal = "surreal"
	BackendMemory  = "memory"
)

const devSessionSecret = "envisionar-dev-session-secret-change-me"

// Provider exposes configuration values to the rest of the application.
// Components depend on this interface so tests can supply their own values.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetBackend() string
	GetSeedFile() string
	GetDBURL() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDBAccess() string
	GetDBQueryTimeout() time.Duration
	GetDashboardStepAttempts() int
	GetDashboardRetryDelay() time.Duration
	GetLoginRateLimit() int
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr               string
	AppBaseURL            string
	SessionSecret         string
	Backend               string
	SeedFile              string
	DBUrl                 string
	DBNs                  string
	DBDb                  string
	DBUser                string
	DBPass                string
	DBAccess              string
	DBQueryTimeout        time.Duration
	DashboardStepAttempts int
	DashboardRetryDelay   time.Duration
	LoginRateLimit        int
}

// New loads configuration from a .env file (when present) and the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		AppAddr:               getEnv("APP_ADDR", ":8080"),
		AppBaseURL:            getEnv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret:         os.Getenv("SESSION_SECRET"),
		Backend:               strings.ToLower(getEnv("BACKEND", BackendSurreal)),
		SeedFile:              getEnv("SEED_FILE", "seed.yaml"),
		DBUrl:                 os.Getenv("SURREAL_URL"),
		DBNs:                  os.Getenv("SURREAL_NS"),
		DBDb:                  os.Getenv("SURREAL_DB"),
		DBUser:                os.Getenv("SURREAL_USER"),
		DBPass:                os.Getenv("SURREAL_PASS"),
		DBAccess:              getEnv("SURREAL_ACCESS", "account"),
		DBQueryTimeout:        getDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		DashboardStepAttempts: getInt("DASHBOARD_STEP_ATTEMPTS", 1),
		DashboardRetryDelay:   getDuration("DASHBOARD_RETRY_DELAY", 200*time.Millisecond),
		LoginRateLimit:        getInt("LOGIN_RATE_LIMIT", 10),
	}
}

// Validate checks that the values required by the selected backend are set.
// In memory mode a development session secret is filled in when none is given.
func (c *Config) Validate() error {
	var missing []string
	switch c.Backend {
	case BackendSurreal:
		if c.DBUrl == "" {
			missing = append(missing, "SURREAL_URL")
		}
		if c.DBNs == "" {
			missing = append(missing, "SURREAL_NS")
		}
		if c.DBDb == "" {
			missing = append(missing, "SURREAL_DB")
		}
		if c.SessionSecret == "" {
			missing = append(missing, "SESSION_SECRET")
		}
	case BackendMemory:
		if c.SeedFile == "" {
			missing = append(missing, "SEED_FILE")
		}
		if c.SessionSecret == "" {
			c.SessionSecret = devSessionSecret
		}
	default:
		return fmt.Errorf("unknown BACKEND %q (expected %q or %q)", c.Backend, BackendSurreal, BackendMemory)
	}

	if len(missing) > 0 {
		return fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if c.DBQueryTimeout <= 0 {
		return errors.New("DB_QUERY_TIMEOUT must be a positive duration")
	}
	if c.DashboardStepAttempts < 1 {
		return errors.New("DASHBOARD_STEP_ATTEMPTS must be at least 1")
	}
	return nil
}

func (c *Config) GetAppAddr() string                    { return c.AppAddr }
func (c *Config) GetAppBaseURL() string                 { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string              { return c.SessionSecret }
func (c *Config) GetBackend() string                    { return c.Backend }
func (c *Config) GetSeedFile() string                   { return c.SeedFile }
func (c *Config) GetDBURL() string                      { return c.DBUrl }
func (c *Config) GetDBNs() string                       { return c.DBNs }
func (c *Config) GetDBDb() string                       { return c.DBDb }
func (c *Config) GetDBUser() string                     { return c.DBUser }
func (c *Config) GetDBPass() string                     { return c.DBPass }
func (c *Config) GetDBAccess() string                   { return c.DBAccess }
func (c *Config) GetDBQueryTimeout() time.Duration      { return c.DBQueryTimeout }
func (c *Config) GetDashboardStepAttempts() int         { return c.DashboardStepAttempts }
func (c *Config) GetDashboardRetryDelay() time.Duration { return c.DashboardRetryDelay }
func (c *Config) GetLoginRateLimit() int                { return c.LoginRateLimit }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid integer for %s (%q), using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid duration for %s (%q), using default %s", key, v, fallback)
		return fallback
	}
	return d
}
