package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimiter limits requests to perMinute per client IP, with bursts up to
// the same amount.
func RateLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute < 1 {
		perMinute = 1
	}
	config := middleware.RateLimiterConfig{
		// In-memory store; suitable for single-instance deployments.
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perMinute) / 60),
			Burst:     perMinute,
			ExpiresIn: 3 * time.Minute,
		}),

		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			FromContext(c.Request().Context()).Warn("Rate limit exceeded",
				"event", "rate_limited", "ip", identifier, "path", c.Path())
			return c.String(http.StatusTooManyRequests, "Muitas tentativas. Tente novamente em instantes.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
