package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Authorities are derived from the
// role by a pure function rather than stored per account, so the mapping can
// never drift between rows.
type Role string

const (
	RoleGuest      Role = "GUEST"
	RoleEmployee   Role = "EMPLOYEE"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// ParseRole normalizes and validates a role name.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleGuest:
		return RoleGuest, nil
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, raw)
	}
}

// Authorities returns the permission strings granted by the role.
// Higher roles are supersets of lower ones.
func (r Role) Authorities() []string {
	switch r {
	case RoleEmployee:
		return []string{"content:read", "content:write", "media:upload"}
	case RoleAdmin:
		return []string{"content:read", "content:write", "content:publish", "content:delete", "media:upload", "users:manage"}
	case RoleSuperAdmin:
		return []string{"content:read", "content:write", "content:publish", "content:delete", "media:upload", "users:manage", "roles:manage", "system:admin"}
	default:
		return []string{"content:read"}
	}
}
