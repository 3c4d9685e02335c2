package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// templNode wraps a templ.Component so it can sit inside a gomponents tree.
type templNode struct {
	ctx       context.Context
	component templ.Component
}

// Render implements gomponents.Node.
func (n templNode) Render(w io.Writer) error {
	return n.component.Render(n.ctx, w)
}

// Templ embeds a templ component in a gomponents page. gomponents does not
// pass a context when rendering, so the caller supplies the request context.
func Templ(ctx context.Context, component templ.Component) gomponents.Node {
	if ctx == nil {
		ctx = context.Background()
	}
	return templNode{ctx: ctx, component: component}
}
