package domain

import "time"

// Role enumerates authorization levels. ADMIN outranks LEADER outranks MEMBER.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleLeader Role = "LEADER"
	RoleMember Role = "MEMBER"
)

// User is an account in the congregation registry. Email and password are
// optional: members registered by a leader may have neither until they are
// granted admin-area access.
type User struct {
	ID           string
	Name         string
	CPF          string
	Email        *string
	PasswordHash *string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
