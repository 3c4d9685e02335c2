package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/envisionar/portal/internal/domain"
	"github.com/envisionar/portal/internal/middleware"
	"github.com/envisionar/portal/internal/rendering"
	"github.com/envisionar/portal/internal/session"
	"github.com/envisionar/portal/internal/templates"
	"github.com/envisionar/portal/internal/view"
	"github.com/labstack/echo/v4"
)

// User-facing login messages.
const (
	msgNotFound           = "Usuário não encontrado na base de dados"
	msgAmbiguous          = "Cadastro duplicado para este e-mail"
	msgInvalidCredentials = "E-mail ou senha inválidos"
	msgUnknownRole        = "Perfil sem painel disponível"
	msgLoginFailed        = "Erro ao fazer login"
	msgInvalidForm        = "Informe um e-mail válido e a senha"
)

// Authenticator is the part of session.Gate the handler needs.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*session.Result, error)
}

// AuthHandler serves the login form, its submission and logout.
type AuthHandler struct {
	gate     Authenticator
	renderer rendering.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate Authenticator, renderer rendering.Renderer) *AuthHandler {
	return &AuthHandler{gate: gate, renderer: renderer}
}

// LoginGet renders the login page (GET /), showing queued toasts and the
// email from a failed attempt.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	flashes, email := view.GetFlashData(c)
	page := templates.Page{Ctx: c.Request().Context(), Flash: flashes}
	return h.renderer.RenderPage(c, http.StatusOK, templates.LoginPage(page, email))
}

// LoginPost handles the login form (POST /). Every outcome is one flash
// message plus one redirect.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := c.Validate(&req); err != nil {
		logger.Debug("Login form rejected", "event", "login_form_invalid", "error", err)
		view.SetFormEmail(c, req.Email)
		view.SetFlashError(c, msgInvalidForm)
		return c.Redirect(http.StatusSeeOther, session.PathLogin)
	}

	res, err := h.gate.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		view.SetFormEmail(c, req.Email)
		view.SetFlashError(c, loginErrorMessage(err))
		return c.Redirect(http.StatusSeeOther, session.PathLogin)
	}

	middleware.SetAuthCookie(c, res.Token)
	view.SetFlashSuccess(c, res.Welcome)
	return c.Redirect(http.StatusSeeOther, res.Destination)
}

// Logout clears the auth cookie (GET /logout).
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearAuthCookie(c)
	return c.Redirect(http.StatusSeeOther, session.PathLogin)
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return msgNotFound
	case errors.Is(err, domain.ErrAmbiguousRecord):
		return msgAmbiguous
	case errors.Is(err, domain.ErrInvalidCredentials):
		return msgInvalidCredentials
	case errors.Is(err, domain.ErrUnknownRole):
		return msgUnknownRole
	default:
		return msgLoginFailed
	}
}
