package dashboard

import (
	"testing"
	"time"

	"github.com/envisionar/portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventOn(y int, m time.Month, d int) domain.Event {
	return domain.Event{Title: "e", Date: time.Date(y, m, d, 19, 0, 0, 0, time.UTC)}
}

func TestBuildCalendar_HighlightsEventDays(t *testing.T) {
	events := []domain.Event{
		eventOn(2026, time.September, 3),
		eventOn(2026, time.September, 10),
		eventOn(2026, time.September, 17),
		eventOn(2026, time.September, 24),
	}
	today := time.Date(2026, time.September, 10, 8, 0, 0, 0, time.UTC)

	cal := BuildCalendar(2026, time.September, events, today)

	require.Len(t, cal.Days, 30)
	assert.Equal(t, 2, cal.LeadingBlanks, "1 Sep 2026 is a Tuesday")
	assert.Equal(t, "Setembro de 2026", cal.Title)

	var highlighted []int
	for _, d := range cal.Days {
		if d.Highlighted {
			highlighted = append(highlighted, d.Day)
		}
	}
	assert.Equal(t, []int{3, 10, 17, 24}, highlighted)
	assert.True(t, cal.Days[9].Today)
	assert.Len(t, cal.Days[9].Events, 1)
}

func TestBuildCalendar_IgnoresOtherMonths(t *testing.T) {
	events := []domain.Event{
		eventOn(2026, time.August, 3),
		eventOn(2025, time.September, 3),
	}
	cal := BuildCalendar(2026, time.September, events, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC))

	for _, d := range cal.Days {
		assert.False(t, d.Highlighted, "day %d", d.Day)
		assert.False(t, d.Today, "today is outside the month")
	}
}

func TestBuildCalendar_LeapFebruary(t *testing.T) {
	cal := BuildCalendar(2024, time.February, nil, time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC))
	assert.Len(t, cal.Days, 29)
	assert.True(t, cal.Days[28].Today)
	assert.Equal(t, 4, cal.LeadingBlanks, "1 Feb 2024 is a Thursday")
}

func TestBuildCalendar_MultipleEventsSameDay(t *testing.T) {
	events := []domain.Event{eventOn(2024, time.April, 5), eventOn(2024, time.April, 5)}
	cal := BuildCalendar(2024, time.April, events, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 1, cal.LeadingBlanks)
	assert.Len(t, cal.Days[4].Events, 2)
}
