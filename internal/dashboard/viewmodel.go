package dashboard

import (
	"time"

	"github.com/envisionar/portal/internal/domain"
)

// ViewModel is everything a dashboard page shows. It is only handed out
// when every pipeline step succeeded.
type ViewModel struct {
	Profile          domain.Profile
	Groups           []domain.Group
	ParticipantCount int
	// Cycle is {0, 0} when no cycle exists yet.
	Cycle        domain.Cycle
	NextEvent    *domain.Event
	MonthEvents  []domain.Event
	Participants []domain.Participant
	Calendar     Calendar
	Now          time.Time
}

// NextEventDays is the days-remaining label for the next event, or "" when
// there is none.
func (vm *ViewModel) NextEventDays() string {
	if vm.NextEvent == nil {
		return ""
	}
	return DaysRemainingLabel(DaysRemaining(vm.NextEvent.Date, vm.Now))
}
