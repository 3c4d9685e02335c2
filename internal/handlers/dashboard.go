package handlers

import (
	"context"
	"net/http"

	"github.com/envisionar/portal/internal/dashboard"
	"github.com/envisionar/portal/internal/domain"
	"github.com/envisionar/portal/internal/middleware"
	"github.com/envisionar/portal/internal/rendering"
	"github.com/envisionar/portal/internal/session"
	"github.com/envisionar/portal/internal/templates"
	"github.com/envisionar/portal/internal/view"
	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
)

const msgDashboardLoad = "Erro ao carregar dados do dashboard"

// DashboardLoader is the part of dashboard.Aggregator the handler needs.
type DashboardLoader interface {
	Profile(ctx context.Context, email string) (*domain.Profile, error)
	Load(ctx context.Context, email string) (*dashboard.ViewModel, error)
	LoadMember(ctx context.Context, email string) (*dashboard.ViewModel, error)
}

// DashboardHandler serves the leader and member dashboards.
type DashboardHandler struct {
	loader   DashboardLoader
	renderer rendering.Renderer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(loader DashboardLoader, renderer rendering.Renderer) *DashboardHandler {
	return &DashboardHandler{loader: loader, renderer: renderer}
}

// LeaderGet serves GET /dashboard-pastor.
func (h *DashboardHandler) LeaderGet(c echo.Context) error {
	return h.serve(c, domain.RoleLeader, h.loader.Load, templates.LeaderDashboard)
}

// MemberGet serves GET /dashboard-membro.
func (h *DashboardHandler) MemberGet(c echo.Context) error {
	return h.serve(c, domain.RoleMember, h.loader.LoadMember, templates.MemberDashboard)
}

type loadFunc func(ctx context.Context, email string) (*dashboard.ViewModel, error)

type pageFunc func(p templates.Page, vm *dashboard.ViewModel) g.Node

func (h *DashboardHandler) serve(c echo.Context, want domain.Role, load loadFunc, page pageFunc) error {
	ctx := c.Request().Context()
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return c.Redirect(http.StatusSeeOther, session.PathLogin)
	}

	flashes, _ := view.GetFlashData(c)
	p := templates.Page{Ctx: ctx, Flash: flashes}

	// The role decides which pipeline may run, so it is checked before
	// anything beyond the profile is fetched.
	profile, err := h.loader.Profile(ctx, identity.Email)
	if err != nil {
		return h.loadFailed(c, p, page)
	}

	role := domain.NormalizeRole(string(profile.Role))
	if role != want {
		dest, err := session.Destination(role)
		if err != nil {
			middleware.ClearAuthCookie(c)
			view.SetFlashError(c, msgUnknownRole)
			return c.Redirect(http.StatusSeeOther, session.PathLogin)
		}
		middleware.FromContext(ctx).Info("Redirecting to the dashboard for the user's role",
			"event", "dashboard_role_redirect", "role", role, "destination", dest)
		return c.Redirect(http.StatusSeeOther, dest)
	}

	vm, err := load(ctx, identity.Email)
	if err != nil {
		return h.loadFailed(c, p, page)
	}
	return h.renderer.RenderPage(c, http.StatusOK, page(p, vm))
}

// loadFailed renders the page shell with the generic error toast. The toast
// goes straight into this page rather than the session.
func (h *DashboardHandler) loadFailed(c echo.Context, p templates.Page, page pageFunc) error {
	if c.Request().Context().Err() != nil {
		// The client went away; nothing to render.
		return nil
	}
	p.Flash.Error = append(p.Flash.Error, msgDashboardLoad)
	return h.renderer.RenderPage(c, http.StatusOK, page(p, nil))
}
