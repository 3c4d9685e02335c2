package memory

import (
	"time"

	"github.com/envisionar/portal/internal/domain"
)

// Demo credentials written by DemoSeed.
const (
	DemoLeaderEmail = "pastor@envisionar.dev"
	DemoMemberEmail = "membro@envisionar.dev"
	DemoPassword    = "envisionar123"
)

// DemoSeed returns a small data set whose events fall around now, so the
// dashboards have something to show in the current month.
func DemoSeed(now time.Time) *Seed {
	day := func(offset int) time.Time {
		d := time.Date(now.Year(), now.Month(), now.Day(), 19, 30, 0, 0, now.Location())
		return d.AddDate(0, 0, offset)
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	return &Seed{
		Accounts: []SeedAccount{
			{Email: DemoLeaderEmail, Password: DemoPassword},
			{Email: DemoMemberEmail, Password: DemoPassword},
		},
		Profiles: []domain.Profile{
			{ID: "pastor", Name: "Carlos Mendes", Email: DemoLeaderEmail, Church: "Igreja Esperança", Program: "Envisionar", Role: domain.RoleLeader},
			{ID: "membro", Name: "Júlia Ramos", Email: DemoMemberEmail, Church: "Igreja Esperança", Program: "Envisionar", Role: domain.RoleMember},
		},
		Groups: []SeedGroup{
			{ID: "g-norte", Name: "Grupo Norte", LeaderID: "pastor", MemberCount: 8, NextMeeting: timePtr(day(3)), Status: domain.GroupStatusOnTrack},
			{ID: "g-sul", Name: "Grupo Sul", LeaderID: "pastor", MemberCount: 5, NextMeeting: timePtr(day(6)), Status: domain.GroupStatusPending},
			{ID: "g-leste", Name: "Grupo Leste", LeaderID: "pastor", MemberCount: 4, Status: domain.GroupStatusLate},
		},
		Participants: []SeedParticipant{
			{ID: "p-julia", ProfileID: "membro", GroupID: "g-norte", Email: DemoMemberEmail, Phone: "(11) 98888-1234"},
			{ID: "p-rafael", GroupID: "g-sul", Email: "rafael@envisionar.dev", Phone: "(11) 97777-4321"},
		},
		Cycles: []SeedCycle{
			{Number: 1, Total: 4, StartDate: monthStart.AddDate(0, -3, 0)},
			{Number: 2, Total: 4, StartDate: monthStart},
		},
		Events: []SeedEvent{
			{Title: "Encontro de líderes", Date: day(3), Time: "19:30", Location: "Templo principal", Description: "Alinhamento do ciclo"},
			{Title: "Culto de celebração", Date: day(10), Time: "18:00", Location: "Templo principal"},
			{Title: "Retiro", Date: day(40), Time: "08:00", Location: "Sítio Boa Vista"},
		},
	}
}

func timePtr(t time.Time) *time.Time { return &t }
