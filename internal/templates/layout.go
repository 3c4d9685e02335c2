// Package templates holds the HTML pages, built with gomponents.
package templates

import (
	"context"

	"github.com/envisionar/portal/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const appName = "Envisionar"

// Page carries what every page needs besides its own content.
type Page struct {
	Ctx   context.Context
	Title string
	Flash view.FlashData
}

// PageTitle appends the application name to title.
func PageTitle(title string) string {
	if title != "" {
		return title + " - " + appName
	}
	return appName
}

// Layout is the HTML document shell shared by all pages.
func Layout(p Page, body ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("pt-BR"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(PageTitle(p.Title))),
				h.Link(h.Rel("stylesheet"), h.Href("/static/css/app.css")),
				h.Script(h.Src("https://cdn.tailwindcss.com")),
				h.Script(h.Src("https://unpkg.com/htmx.org@2.0.4"), h.Defer()),
			),
			h.Body(
				h.Class("bg-gray-50 text-gray-800"),
				hx.Boost("true"),
				view.Templ(p.Ctx, view.Toasts(p.Flash)),
				g.Group(body),
			),
		),
	)
}
