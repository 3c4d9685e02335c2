// Package server assembles the echo instance, its middleware and routes.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/envisionar/portal/internal/app"
	"github.com/envisionar/portal/internal/handlers"
	"github.com/envisionar/portal/internal/middleware"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E    *echo.Echo
	deps *app.Dependencies
}

// New creates a Server with the middleware stack installed. Routes are added
// by RegisterRoutes.
func New(deps *app.Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	if r, ok := deps.Renderer.(echo.Renderer); ok {
		e.Renderer = r
	}
	setupErrorHandling(e)

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(deps.Metrics.Middleware())

	return &Server{E: e, deps: deps}
}

// setupErrorHandling logs unhandled errors with a stack trace before handing
// them to echo's default handler.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code >= http.StatusInternalServerError {
			logger := middleware.FromContext(c.Request().Context())
			logger.Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		} else {
			slog.Debug("HTTP error", "code", he.Code, "path", c.Request().URL.Path)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
