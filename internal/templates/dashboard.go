package templates

import (
	"fmt"

	"github.com/envisionar/portal/internal/dashboard"
	"github.com/envisionar/portal/internal/session"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

var leaderSidebar = []sidebarItem{
	{text: "Dashboard", href: session.PathLeaderDashboard, active: true},
	{text: "Grupos", href: session.PathLeaderDashboard + "#groups"},
	{text: "Calendário", href: session.PathLeaderDashboard + "#calendar"},
	{text: "Participantes", href: session.PathLeaderDashboard + "#participants"},
}

var memberSidebar = []sidebarItem{
	{text: "Dashboard", href: session.PathMemberDashboard, active: true},
	{text: "Calendário", href: session.PathMemberDashboard + "#calendar"},
}

// LeaderDashboard renders the pastor dashboard. A nil view model renders the
// page shell only, so a failed load never shows partial data.
func LeaderDashboard(p Page, vm *dashboard.ViewModel) g.Node {
	if p.Title == "" {
		p.Title = "Painel do Pastor"
	}
	return Layout(p,
		h.Div(
			h.Class("flex h-screen"),
			sidebar(leaderSidebar),
			h.Main(
				h.ID("dashboard-content"),
				h.Class("flex-1 overflow-y-auto p-8"),
				g.If(vm == nil, loadFailedNotice()),
				g.Iff(vm != nil, func() g.Node { return leaderContent(vm) }),
			),
		),
	)
}

func leaderContent(vm *dashboard.ViewModel) g.Node {
	return g.Group{
		welcomeHeader(vm.Profile, session.PathLeaderDashboard),
		h.Div(
			h.Class("grid grid-cols-1 md:grid-cols-4 gap-6 mb-8"),
			statCard("Grupos", fmt.Sprintf("%d", len(vm.Groups)), ""),
			statCard("Participantes", fmt.Sprintf("%d", vm.ParticipantCount), ""),
			statCard("Ciclo atual", cycleText(vm.Cycle), ""),
			nextEventCard(vm),
		),
		h.Div(
			h.Class("grid grid-cols-1 lg:grid-cols-2 gap-6"),
			groupsTable(vm.Groups),
			calendarGrid(vm.Calendar),
		),
		participantCards(vm.Participants),
	}
}

// MemberDashboard renders the member dashboard: profile, cycle, next event
// and calendar, without the group or participant directory.
func MemberDashboard(p Page, vm *dashboard.ViewModel) g.Node {
	if p.Title == "" {
		p.Title = "Meu Painel"
	}
	return Layout(p,
		h.Div(
			h.Class("flex h-screen"),
			sidebar(memberSidebar),
			h.Main(
				h.ID("dashboard-content"),
				h.Class("flex-1 overflow-y-auto p-8"),
				g.If(vm == nil, loadFailedNotice()),
				g.Iff(vm != nil, func() g.Node {
					return g.Group{
						welcomeHeader(vm.Profile, session.PathMemberDashboard),
						h.Div(
							h.Class("grid grid-cols-1 md:grid-cols-2 gap-6 mb-8"),
							statCard("Ciclo atual", cycleText(vm.Cycle), ""),
							nextEventCard(vm),
						),
						calendarGrid(vm.Calendar),
					}
				}),
			),
		),
	)
}
