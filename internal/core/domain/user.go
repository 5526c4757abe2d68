package domain

import "time"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleMember Role = "member"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

// User models an account in the system. Email and username are globally
// unique; PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
