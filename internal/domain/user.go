package domain

import "time"

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants full administrative access.
	RoleAdmin Role = "admin"
	// RoleMember grants standard user access.
	RoleMember Role = "member"
)

// User represents an authenticated user account in the system.
type User struct {
	Syncable
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Role         Role      `json:"role"`                    // admin or member
	DisplayName  string    `json:"display_name"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// IsAdmin returns true if the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Name returns the best available name to display for the user.
// Prefers DisplayName, falls back to email.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
