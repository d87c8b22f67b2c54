package entities

import "time"

// User represents a user entity in the database
type User struct {
	ID           string     `json:"id"` // UUID
	Username     string     `json:"username"`
	Email        *string    `json:"email,omitempty"`
	FullName     *string    `json:"full_name,omitempty"`
	PasswordHash string     `json:"-"` // Don't expose password hash in JSON
	Roles        []string   `json:"roles"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	IsActive     bool       `json:"is_active"`
}

// IsSuperuser reports whether the user holds the SuperUser role.
func (u *User) IsSuperuser() bool {
	for _, r := range u.Roles {
		if r == RoleSuperUser {
			return true
		}
	}
	return false
}
