package models

import "strings"

// RoleType identifies which collection a principal lives in
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleTeacher RoleType = "teacher"
	RoleStudent RoleType = "student"
)

// ParseRole maps a path segment such as "teacher" to a RoleType.
func ParseRole(s string) (RoleType, bool) {
	switch r := RoleType(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return r, true
	default:
		return "", false
	}
}
