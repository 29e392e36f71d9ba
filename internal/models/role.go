package models

import "strings"

// Role is an employee's designation as used for authorization
type Role string

const (
	RoleCGM   Role = "CGM"
	RoleGM    Role = "GM"
	RoleDGM   Role = "DGM"
	RoleAGM   Role = "AGM"
	RoleSDE   Role = "SDE"
	RoleJTO   Role = "JTO"
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// AllRoles lists every role, most senior first
var AllRoles = []Role{RoleAdmin, RoleCGM, RoleGM, RoleDGM, RoleAGM, RoleSDE, RoleJTO, RoleStaff}

// ParseRole returns the role for a designation string, defaulting to STAFF
func ParseRole(s string) Role {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r
		}
	}
	return RoleStaff
}
