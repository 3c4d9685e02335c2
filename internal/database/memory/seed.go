package memory

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/envisionar/portal/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Seed is the on-disk shape of a development data set.
type Seed struct {
	Accounts     []SeedAccount     `yaml:"accounts"`
	Profiles     []domain.Profile  `yaml:"profiles"`
	Groups       []SeedGroup       `yaml:"groups"`
	Participants []SeedParticipant `yaml:"participants"`
	Cycles       []SeedCycle       `yaml:"cycles"`
	Events       []SeedEvent       `yaml:"events"`
}

// SeedAccount is a sign-in credential. Either a bcrypt hash or a plain
// password (hashed on load) must be given.
type SeedAccount struct {
	Email        string `yaml:"email"`
	Password     string `yaml:"password,omitempty"`
	PasswordHash string `yaml:"password_hash,omitempty"`
}

type SeedGroup struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	LeaderID    string     `yaml:"leader_id"`
	MemberCount int        `yaml:"member_count"`
	NextMeeting *time.Time `yaml:"next_meeting"`
	Status      string     `yaml:"status"`
}

type SeedParticipant struct {
	ID        string `yaml:"id"`
	ProfileID string `yaml:"profile_id"`
	GroupID   string `yaml:"group_id"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
}

type SeedCycle struct {
	Number    int       `yaml:"number"`
	Total     int       `yaml:"total"`
	StartDate time.Time `yaml:"start_date"`
}

type SeedEvent struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Date        time.Time `yaml:"date"`
	Time        string    `yaml:"time"`
	Location    string    `yaml:"location"`
	Description string    `yaml:"description"`
}

// ReadSeed decodes a YAML seed file from fs.
func ReadSeed(fs afero.Fs, path string) (*Seed, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

// WriteSeed encodes seed as YAML to path, creating parent directories.
func WriteSeed(fs afero.Fs, path string, seed *Seed) error {
	data, err := yaml.Marshal(seed)
	if err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create seed directory: %w", err)
	}
	return afero.WriteFile(fs, path, data, 0o644)
}

// normalize fills missing IDs and maps legacy role names.
// clone copies every slice so normalizing and sorting never reach the
// caller's data.
func (s *Seed) clone() *Seed {
	return &Seed{
		Accounts:     slices.Clone(s.Accounts),
		Profiles:     slices.Clone(s.Profiles),
		Groups:       slices.Clone(s.Groups),
		Participants: slices.Clone(s.Participants),
		Cycles:       slices.Clone(s.Cycles),
		Events:       slices.Clone(s.Events),
	}
}

func (s *Seed) normalize() error {
	for i := range s.Profiles {
		p := &s.Profiles[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.Role = domain.NormalizeRole(string(p.Role))
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %d (%s): %w", i, p.Email, err)
		}
	}
	for i := range s.Groups {
		if s.Groups[i].ID == "" {
			s.Groups[i].ID = uuid.NewString()
		}
	}
	for i := range s.Participants {
		if s.Participants[i].ID == "" {
			s.Participants[i].ID = uuid.NewString()
		}
	}
	for i := range s.Events {
		if s.Events[i].ID == "" {
			s.Events[i].ID = uuid.NewString()
		}
	}
	return nil
}
