package templates

import (
	"fmt"

	"github.com/envisionar/portal/internal/dashboard"
	"github.com/envisionar/portal/internal/domain"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

type sidebarItem struct {
	text   string
	href   string
	active bool
}

func sidebar(items []sidebarItem) g.Node {
	return h.Aside(
		h.Class("w-64 bg-white shadow-lg"),
		h.Div(h.Class("p-4 text-2xl font-bold text-purple-600"), g.Text(appName)),
		h.Nav(
			h.Class("mt-8"),
			g.Map(items, func(it sidebarItem) g.Node {
				cls := "flex items-center px-6 py-3 text-gray-700 hover:bg-purple-50 hover:text-purple-600"
				if it.active {
					cls += " bg-purple-50 text-purple-600"
				}
				return h.A(h.Href(it.href), h.Class(cls), h.Span(h.Class("ml-3"), g.Text(it.text)))
			}),
			h.A(h.Href("/logout"), h.Class("flex items-center px-6 py-3 text-gray-500 hover:text-red-600"),
				h.Span(h.Class("ml-3"), g.Text("Sair"))),
		),
	)
}

func welcomeHeader(p domain.Profile, refreshPath string) g.Node {
	return h.Header(
		h.Class("flex items-center justify-between mb-8"),
		h.Div(
			h.H1(h.Class("text-2xl font-semibold"), g.Textf("Olá, %s", p.Name)),
			h.P(h.Class("text-gray-500"), g.Textf("%s · %s", p.Church, p.Program)),
		),
		h.Button(
			h.Type("button"),
			h.Class("text-sm text-purple-600 hover:underline"),
			hx.Get(refreshPath),
			hx.Select("#dashboard-content"),
			hx.Target("#dashboard-content"),
			hx.Swap("outerHTML"),
			g.Text("Atualizar"),
		),
	)
}

func statCard(label, value, detail string) g.Node {
	return h.Div(
		h.Class("bg-white rounded-lg shadow-sm p-6"),
		h.P(h.Class("text-sm text-gray-500"), g.Text(label)),
		h.P(h.Class("text-2xl font-bold text-gray-800 mt-1"), g.Text(value)),
		g.If(detail != "", h.P(h.Class("text-sm text-purple-600 mt-1"), g.Text(detail))),
	)
}

func cycleText(c domain.Cycle) string {
	return fmt.Sprintf("%d de %d", c.Number, c.Total)
}

func nextEventCard(vm *dashboard.ViewModel) g.Node {
	if vm.NextEvent == nil {
		return statCard("Próximo evento", "Nenhum evento agendado", "")
	}
	e := vm.NextEvent
	return statCard("Próximo evento", e.Title,
		fmt.Sprintf("%s · %s", dashboard.FormatDate(&e.Date), vm.NextEventDays()))
}

func calendarGrid(cal dashboard.Calendar) g.Node {
	return h.Section(
		h.ID("calendar"),
		h.Class("bg-white rounded-lg shadow-sm p-6"),
		h.H2(h.Class("text-xl font-semibold mb-4"), g.Text(cal.Title)),
		h.Div(
			h.Class("grid grid-cols-7 gap-2 text-center"),
			g.Map(dashboard.WeekdayHeaders, func(d string) g.Node {
				return h.Div(h.Class("text-xs font-medium text-gray-500"), g.Text(d))
			}),
			g.Map(make([]struct{}, cal.LeadingBlanks), func(struct{}) g.Node {
				return h.Div(h.Class("calendar-blank"))
			}),
			g.Map(cal.Days, calendarCell),
		),
	)
}

func calendarCell(d dashboard.CalendarDay) g.Node {
	cls := "calendar-day rounded p-2 text-sm"
	if d.Highlighted {
		cls += " highlighted bg-purple-100 text-purple-800 font-semibold"
	}
	if d.Today {
		cls += " today ring-2 ring-purple-500"
	}
	titles := ""
	for i, e := range d.Events {
		if i > 0 {
			titles += ", "
		}
		titles += e.Title
	}
	return h.Div(
		h.Class(cls),
		g.If(titles != "", g.Attr("title", titles)),
		g.Textf("%d", d.Day),
	)
}

func groupsTable(groups []domain.Group) g.Node {
	return h.Section(
		h.ID("groups"),
		h.Class("bg-white rounded-lg shadow-sm p-6"),
		h.H2(h.Class("text-xl font-semibold mb-4"), g.Text("Grupos")),
		g.If(len(groups) == 0, h.P(h.Class("text-gray-500"), g.Text("Nenhum grupo cadastrado"))),
		g.If(len(groups) > 0, h.Table(
			h.Class("w-full text-sm"),
			h.THead(h.Tr(
				h.Th(h.Class("text-left py-2"), g.Text("Grupo")),
				h.Th(h.Class("text-left py-2"), g.Text("Líder")),
				h.Th(h.Class("text-left py-2"), g.Text("Membros")),
				h.Th(h.Class("text-left py-2"), g.Text("Próximo encontro")),
				h.Th(h.Class("text-left py-2"), g.Text("Status")),
			)),
			h.TBody(g.Map(groups, func(gr domain.Group) g.Node {
				return h.Tr(
					h.Class("border-t"),
					h.Td(h.Class("py-2"), g.Text(gr.Name)),
					h.Td(h.Class("py-2"), g.Text(gr.LeaderName)),
					h.Td(h.Class("py-2"), g.Textf("%d", gr.MemberCount)),
					h.Td(h.Class("py-2"), g.Text(dashboard.FormatDate(gr.NextMeeting))),
					h.Td(h.Class("py-2"), h.Span(
						h.Class("text-xs px-2 py-1 rounded-full "+dashboard.StatusClass(gr.Status)),
						g.Text(dashboard.StatusLabel(gr.Status)),
					)),
				)
			})),
		)),
	)
}

func participantCards(participants []domain.Participant) g.Node {
	return h.Section(
		h.ID("participants"),
		h.Class("mt-8"),
		h.H2(h.Class("text-xl font-semibold text-gray-800 mb-6"), g.Text("Participantes")),
		h.Div(
			h.Class("grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 xl:grid-cols-4 gap-6"),
			g.Map(participants, participantCard),
		),
	)
}

func participantCard(p domain.Participant) g.Node {
	var name, groupName string
	var role domain.Role
	if p.Profile != nil {
		name = p.Profile.Name
		role = p.Profile.Role
	}
	if p.Group != nil {
		groupName = p.Group.Name
	}
	return h.Div(
		h.Class("participant bg-white rounded-lg shadow-sm p-6"),
		h.Div(
			h.Class("mb-4"),
			h.H3(h.Class("font-medium text-gray-800"), g.Text(name)),
			g.If(role != "", h.Span(
				h.Class("text-xs px-2 py-1 rounded-full "+dashboard.RoleClass(role)),
				g.Text(dashboard.RoleLabel(role)),
			)),
		),
		h.Div(
			h.Class("space-y-2 text-sm text-gray-600"),
			h.P(g.Text(groupName)),
			h.P(g.Text(p.Email)),
			h.P(g.Text(p.Phone)),
		),
	)
}

func loadFailedNotice() g.Node {
	return h.Div(
		h.Class("bg-white rounded-lg shadow-sm p-6 text-gray-500"),
		g.Text("Não foi possível carregar os dados. Tente novamente em instantes."),
	)
}
