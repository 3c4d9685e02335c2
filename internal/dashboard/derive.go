package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/envisionar/portal/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const dateLayoutBR = "02/01/2006"

// FormatDate renders t as dd/mm/yyyy. Nil or zero times render as "".
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayoutBR)
}

// FormatDateISO renders an ISO date (2006-01-02) or RFC 3339 timestamp as
// dd/mm/yyyy in the process's local zone. Empty or unparsable input renders
// as "".
func FormatDateISO(s string) string {
	return FormatDateISOIn(s, time.Local)
}

// FormatDateISOIn is FormatDateISO with an explicit zone. Timestamps are
// shifted into loc before the calendar date is taken; a bare date has no
// instant and is printed as written.
func FormatDateISOIn(s string, loc *time.Location) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Format(dateLayoutBR)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc).Format(dateLayoutBR)
	}
	return ""
}

// DaysRemaining is the number of days from now until event, rounded up.
// Past events give zero or a negative count.
func DaysRemaining(event, now time.Time) int {
	return int(math.Ceil(event.Sub(now).Hours() / 24))
}

// DaysRemainingLabel turns a day count into display text.
func DaysRemainingLabel(n int) string {
	switch {
	case n < 0:
		return "Evento encerrado"
	case n == 0:
		return "É hoje"
	case n == 1:
		return "Falta 1 dia"
	default:
		return fmt.Sprintf("Faltam %d dias", n)
	}
}

// Badge classes; the status value itself is opaque so unknown ones get neutral.
var statusClasses = map[string]string{
	domain.GroupStatusOnTrack: "bg-green-100 text-green-800",
	domain.GroupStatusPending: "bg-yellow-100 text-yellow-800",
	domain.GroupStatusLate:    "bg-red-100 text-red-800",
}

var statusLabels = map[string]string{
	domain.GroupStatusOnTrack: "Em dia",
	domain.GroupStatusPending: "Pendente",
	domain.GroupStatusLate:    "Atrasado",
}

// StatusClass returns the badge classes for a group status.
func StatusClass(status string) string {
	if c, ok := statusClasses[status]; ok {
		return c
	}
	return "bg-gray-100 text-gray-800"
}

// StatusLabel returns display text for a group status, falling back to the raw value.
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

// RoleClass returns the badge classes for a participant's role.
func RoleClass(role domain.Role) string {
	if domain.NormalizeRole(string(role)) == domain.RoleLeader {
		return "bg-purple-100 text-purple-800"
	}
	return "bg-blue-100 text-blue-800"
}

// RoleLabel returns display text for a role.
func RoleLabel(role domain.Role) string {
	switch domain.NormalizeRole(string(role)) {
	case domain.RoleLeader:
		return "Pastor"
	case domain.RoleMember:
		return "Membro"
	default:
		return string(role)
	}
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var titleCaser = cases.Title(language.BrazilianPortuguese)

// MonthTitle renders e.g. "Outubro de 2026".
func MonthTitle(year int, month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return fmt.Sprintf("%s de %d", titleCaser.String(monthNames[month-1]), year)
}

// MonthBounds returns the first and last instant of the month containing t,
// in t's location. Both ends are inclusive.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, 0).Add(-time.Millisecond)
	return first, last
}
