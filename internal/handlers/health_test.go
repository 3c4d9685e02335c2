package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/envisionar/portal/internal/handlers"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type staticHealth bool

func (s staticHealth) Healthy() bool { return bool(s) }

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		checker  handlers.HealthChecker
		wantCode int
		wantBody string
	}{
		{"no checker", nil, http.StatusOK, `"status":"ok"`},
		{"healthy", staticHealth(true), http.StatusOK, `"status":"ok"`},
		{"unhealthy", staticHealth(false), http.StatusServiceUnavailable, `"status":"degraded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/health", handlers.Health("surreal", tt.checker))

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Contains(t, rec.Body.String(), `"backend":"surreal"`)
		})
	}
}
