package types

import "fmt"

// UserRole controls which operations a user may perform
type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleManager   UserRole = "MANAGER"
	UserRoleArchitect UserRole = "ARCHITECT"
)

// AllUserRoles returns all valid user roles
func AllUserRoles() []UserRole {
	return []UserRole{
		UserRoleAdmin,
		UserRoleManager,
		UserRoleArchitect,
	}
}

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleArchitect:
		return true
	default:
		return false
	}
}

// String returns the string representation of the user role
func (r UserRole) String() string {
	return string(r)
}

// ParseUserRole parses a string into a UserRole
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid user role: %s", s)
	}
	return role, nil
}
