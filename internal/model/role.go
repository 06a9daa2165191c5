package model

// Role is the authorization role of a user. The set is closed: authorization
// decisions switch over these values, so adding a role means adding a constant
// here and extending AllRoles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// AllRoles lists every role the system recognizes.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleTeacher, RoleStudent}
}

// IsValid reports whether r is one of the recognized roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether r grants access to the administrative API.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
