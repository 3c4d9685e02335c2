package server

import (
	"github.com/envisionar/portal/internal/handlers"
	"github.com/envisionar/portal/internal/middleware"
	"github.com/envisionar/portal/internal/session"
	"github.com/envisionar/portal/web"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	d := s.deps
	rateLimiter := middleware.RateLimiter(d.Config.GetLoginRateLimit())
	requireAuth := middleware.Auth(d.Backend)

	s.E.GET(session.PathLogin, d.AuthHandler.LoginGet)
	s.E.POST(session.PathLogin, d.AuthHandler.LoginPost, rateLimiter)
	s.E.GET(session.PathLogout, d.AuthHandler.Logout)

	s.E.GET(session.PathLeaderDashboard, d.DashboardHandler.LeaderGet, requireAuth)
	s.E.GET(session.PathMemberDashboard, d.DashboardHandler.MemberGet, requireAuth)

	s.E.GET("/health", handlers.Health(d.Config.GetBackend(), d.HealthChecker()))
	s.E.GET("/metrics", d.Metrics.Handler())

	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
}
