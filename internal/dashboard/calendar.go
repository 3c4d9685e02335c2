package dashboard

import (
	"time"

	"github.com/envisionar/portal/internal/domain"
)

// WeekdayHeaders are the calendar column titles, Sunday first.
var WeekdayHeaders = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// Calendar is one month laid out for a Sunday-first grid.
type Calendar struct {
	Year  int
	Month time.Month
	Title string
	// LeadingBlanks is the number of empty cells before day 1.
	LeadingBlanks int
	Days          []CalendarDay
}

// CalendarDay is one cell of the grid.
type CalendarDay struct {
	Day         int
	Highlighted bool
	Today       bool
	Events      []domain.Event
}

// BuildCalendar lays out year/month with every day that has an event
// highlighted. Events match on the full date in today's location, so an event
// from another month never lights up a cell.
func BuildCalendar(year int, month time.Month, events []domain.Event, today time.Time) Calendar {
	loc := today.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cal := Calendar{
		Year:          year,
		Month:         month,
		Title:         MonthTitle(year, month),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]CalendarDay, daysInMonth),
	}
	for i := range cal.Days {
		cal.Days[i].Day = i + 1
	}

	for _, e := range events {
		d := e.Date.In(loc)
		if d.Year() != year || d.Month() != month {
			continue
		}
		cell := &cal.Days[d.Day()-1]
		cell.Highlighted = true
		cell.Events = append(cell.Events, e)
	}

	if ty, tm, td := today.Date(); ty == year && tm == month {
		cal.Days[td-1].Today = true
	}
	return cal
}
