package auth

import "github.com/missao-redime/church-service/internal/domain"

// Role predicates encode the total order ADMIN > LEADER > MEMBER. They are
// used both by the route guard and inside data-mutating handlers.

// IsAdmin reports whether the role is ADMIN.
func IsAdmin(role domain.Role) bool {
	return role == domain.RoleAdmin
}

// IsLeaderOrAbove reports whether the role is LEADER or ADMIN.
func IsLeaderOrAbove(role domain.Role) bool {
	return role == domain.RoleLeader || role == domain.RoleAdmin
}

// IsMemberOrAbove reports whether the role is any recognized role.
func IsMemberOrAbove(role domain.Role) bool {
	switch role {
	case domain.RoleMember, domain.RoleLeader, domain.RoleAdmin:
		return true
	}
	return false
}
