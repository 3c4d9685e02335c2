package templates

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// LoginPage is the sign-in form. Email pre-fills the field after a failed attempt.
func LoginPage(p Page, email string) g.Node {
	if p.Title == "" {
		p.Title = "Entrar"
	}
	return Layout(p,
		h.Main(
			h.Class("min-h-screen flex items-center justify-center"),
			h.Div(
				h.Class("w-full max-w-sm bg-white rounded-xl shadow-lg p-8"),
				h.H1(h.Class("text-3xl font-bold text-purple-600 text-center mb-2"), g.Text(appName)),
				h.P(h.Class("text-center text-gray-500 mb-6"), g.Text("Acesse sua conta")),
				h.Form(
					h.ID("login-form"),
					h.Method("post"),
					h.Action("/"),
					h.Class("space-y-4"),
					h.Input(
						h.Type("email"), h.Name("email"), h.Value(email),
						h.Placeholder("E-mail"), g.Attr("aria-label", "E-mail"),
						h.AutoComplete("username"), h.Required(),
						h.Class("w-full border rounded px-3 py-2"),
					),
					h.Input(
						h.Type("password"), h.Name("password"),
						h.Placeholder("Senha"), g.Attr("aria-label", "Senha"),
						h.AutoComplete("current-password"), h.Required(),
						h.Class("w-full border rounded px-3 py-2"),
					),
					h.Button(
						h.Type("submit"),
						h.Class("w-full bg-purple-600 hover:bg-purple-700 text-white font-semibold py-2 rounded"),
						g.Text("Entrar"),
					),
				),
			),
		),
	)
}
