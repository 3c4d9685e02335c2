package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

// Role is the kind of profile, which decides the dashboard a user lands on.
type Role string

const (
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

// legacyRoles maps the values stored by the first version of the app.
var legacyRoles = map[string]Role{
	"pastor": RoleLeader,
	"membro": RoleMember,
}

// NormalizeRole maps a stored role value to a Role. Legacy values are
// translated; unrecognised values are kept (lower-cased) so callers can
// report them.
func NormalizeRole(raw string) Role {
	v := strings.ToLower(strings.TrimSpace(raw))
	if r, ok := legacyRoles[v]; ok {
		return r
	}
	return Role(v)
}

// ParseRole is NormalizeRole plus a check that the role is one we route.
func ParseRole(raw string) (Role, error) {
	r := NormalizeRole(raw)
	if !r.Known() {
		return r, fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
	return r, nil
}

// Known reports whether r is one of the supported roles.
func (r Role) Known() bool {
	return r == RoleLeader || r == RoleMember
}

func (r Role) String() string { return string(r) }

// Identity is an authenticated account as reported by the auth service.
type Identity struct {
	Email string
}

// Profile is the application-level user record, distinct from the identity.
type Profile struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name" validate:"required"`
	Email   string `json:"email" yaml:"email" validate:"required,email"`
	Church  string `json:"church" yaml:"church"`
	Program string `json:"program" yaml:"program"`
	Role    Role   `json:"role" yaml:"role" validate:"required"`
}

// Validate runs the struct tag checks on the profile.
func (p *Profile) Validate() error {
	return validatorInstance.Struct(p)
}
