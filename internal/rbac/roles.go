package rbac

// Role is a closed tag: a principal is either a student or a teacher.
// Roles are immutable after registration.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole validates a wire-level role string once, at the boundary.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleTeacher:
		return Role(s), true
	}
	return "", false
}

// Principal is the authenticated identity making a request.
type Principal struct {
	ID       int64
	Username string
	Role     Role
}

var RolePermissions = map[Role][]string{
	RoleStudent: {
		"material:view",
		"quiz:view",
		"quiz:submit",
		"progress:view-own",
		"qrcode:create",
		"chat:use",
	},
	RoleTeacher: {
		"material:create",
		"material:view",
		"quiz:create",
		"quiz:delete-own",
		"quiz:view",
		"progress:view-all",
		"qrcode:create",
		"chat:use",
	},
}
