package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/envisionar/portal/internal/dashboard"
	"github.com/envisionar/portal/internal/domain"
	"github.com/envisionar/portal/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func testViewModel() *dashboard.ViewModel {
	now := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	meeting := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
	next := domain.Event{Title: "Encontro de líderes", Date: meeting}
	month := []domain.Event{next}
	return &dashboard.ViewModel{
		Profile:          domain.Profile{Name: "Ana", Church: "Central", Program: "Envisionar", Role: domain.RoleLeader},
		Groups:           []domain.Group{{Name: "Grupo Norte", LeaderName: "Ana", MemberCount: 6, NextMeeting: &meeting, Status: domain.GroupStatusLate}},
		ParticipantCount: 1,
		Cycle:            domain.Cycle{Number: 2, Total: 4},
		NextEvent:        &next,
		MonthEvents:      month,
		Participants: []domain.Participant{{
			Email:   "bia@example.com",
			Phone:   "11 99999-0000",
			Profile: &domain.Profile{Name: "Bia", Role: domain.RoleMember},
			Group:   &domain.Group{Name: "Grupo Norte"},
		}},
		Calendar: dashboard.BuildCalendar(2026, time.October, month, now),
		Now:      now,
	}
}

func TestLoginPage(t *testing.T) {
	out := render(t, LoginPage(Page{Ctx: context.Background(), Flash: view.FlashData{Error: []string{"E-mail ou senha inválidos"}}}, "ana@example.com"))

	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, "<title>Entrar - Envisionar</title>")
	assert.Contains(t, out, `value="ana@example.com"`)
	assert.Contains(t, out, "E-mail ou senha inválidos")
	assert.Contains(t, out, `method="post"`)
}

func TestLeaderDashboard(t *testing.T) {
	out := render(t, LeaderDashboard(Page{Ctx: context.Background()}, testViewModel()))

	assert.Contains(t, out, "Olá, Ana")
	assert.Contains(t, out, "2 de 4")
	assert.Contains(t, out, "Encontro de líderes")
	assert.Contains(t, out, "20/10/2026 · Faltam 4 dias")
	assert.Contains(t, out, "Outubro de 2026")
	assert.Contains(t, out, "bg-red-100 text-red-800")
	assert.Contains(t, out, "bg-blue-100 text-blue-800")
	assert.Contains(t, out, "11 99999-0000")
	assert.Equal(t, 1, strings.Count(out, " highlighted "), "one event day in the month")
	assert.Contains(t, out, `hx-get="/dashboard-pastor"`)
}

func TestLeaderDashboard_FailedLoadShowsShellOnly(t *testing.T) {
	out := render(t, LeaderDashboard(Page{Ctx: context.Background(), Flash: view.FlashData{Error: []string{"Erro ao carregar dados do dashboard"}}}, nil))

	assert.Contains(t, out, "Erro ao carregar dados do dashboard")
	assert.Contains(t, out, "Não foi possível carregar os dados")
	assert.NotContains(t, out, "Participantes</h2>")
}

func TestMemberDashboard(t *testing.T) {
	out := render(t, MemberDashboard(Page{Ctx: context.Background()}, testViewModel()))

	assert.Contains(t, out, "<title>Meu Painel - Envisionar</title>")
	assert.Contains(t, out, "Ciclo atual")
	assert.NotContains(t, out, "bia@example.com", "members do not see the directory")
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Envisionar", PageTitle(""))
	assert.Equal(t, "Entrar - Envisionar", PageTitle("Entrar"))
}
