package session

import (
	"fmt"

	"github.com/envisionar/portal/internal/domain"
)

// Fixed application paths.
const (
	PathLogin           = "/"
	PathLogout          = "/logout"
	PathLeaderDashboard = "/dashboard-pastor"
	PathMemberDashboard = "/dashboard-membro"
)

// Destination returns the dashboard path for role.
func Destination(role domain.Role) (string, error) {
	switch role {
	case domain.RoleLeader:
		return PathLeaderDashboard, nil
	case domain.RoleMember:
		return PathMemberDashboard, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}
}
