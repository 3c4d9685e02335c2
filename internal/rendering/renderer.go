// Package rendering writes templ components and gomponents nodes to echo responses.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer renders any supported component (templ or gomponents).
type Renderer interface {
	// RenderComponent renders a component to bytes, e.g. for htmx fragments.
	RenderComponent(ctx context.Context, component any) ([]byte, error)

	// RenderPage writes a full HTML response.
	RenderPage(c echo.Context, status int, component any) error
}

// UniversalRenderer handles both templ.Component and gomponents.Node.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer instance.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// gomponentNode is the shape of gomponents.Node.
type gomponentNode interface {
	Render(w io.Writer) error
}

func (r *UniversalRenderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case gomponentNode:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T: want templ.Component or gomponents.Node", component)
	}
}

// RenderComponent implements Renderer.
func (r *UniversalRenderer) RenderComponent(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("failed to render component to bytes: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage implements Renderer. The component is rendered into a buffer
// first so that a render error can still produce a 500 instead of a
// half-written page.
func (r *UniversalRenderer) RenderPage(c echo.Context, status int, component any) error {
	body, err := r.RenderComponent(c.Request().Context(), component)
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "Failed to render page", "event", "render_failure",
			"path", c.Path(), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render page").SetInternal(err)
	}
	return c.HTMLBlob(status, body)
}

// Render implements echo.Renderer so handlers can call c.Render(status, "", component).
func (r *UniversalRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}
