package user

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleAlumni    Role = "ALUMNI"
	RoleProfessor Role = "PROFESSOR"
)

// ParseRole matches case-insensitively against the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleAlumni:
		return RoleAlumni, nil
	case RoleProfessor:
		return RoleProfessor, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAlumni, RoleProfessor:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
