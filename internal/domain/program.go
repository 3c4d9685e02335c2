package domain

import "time"

// Group statuses as supplied by the backend. The value is opaque to the core;
// these constants only name the ones the UI knows how to colour.
const (
	GroupStatusOnTrack = "on-track"
	GroupStatusPending = "pending"
	GroupStatusLate    = "late"
)

// Group is a small group led by one profile.
type Group struct {
	ID          string
	Name        string
	LeaderID    string
	LeaderName  string
	MemberCount int
	NextMeeting *time.Time
	Status      string
}

// Participant links a profile to a group, with contact details.
type Participant struct {
	ID        string
	ProfileID string
	GroupID   string
	Email     string
	Phone     string

	// Joined records; nil when the reference is dangling.
	Profile *Profile
	Group   *Group
}

// Cycle is a sequential program phase, e.g. cycle 3 of 4.
type Cycle struct {
	Number    int
	Total     int
	StartDate time.Time
}

// Event is a dated program activity.
type Event struct {
	ID          string
	Title       string
	Date        time.Time
	Time        string
	Location    string
	Description string
}
