package models

// CreateUserRequest represents the admin request body for creating a user
type CreateUserRequest struct {
	Username string   `json:"username" binding:"required,min=3"`
	Email    *string  `json:"email,omitempty" binding:"omitempty,email"`
	FullName *string  `json:"full_name,omitempty"`
	Password string   `json:"password" binding:"required,min=6"`
	Roles    []string `json:"roles" binding:"required"`
}

// EditUserRequest represents a partial user edit: only supplied fields are
// applied; roles replace the stored list wholesale
type EditUserRequest struct {
	Username *string   `json:"username,omitempty"`
	FullName *string   `json:"full_name,omitempty"`
	Password *string   `json:"password,omitempty" binding:"omitempty,min=6"`
	Roles    *[]string `json:"roles,omitempty"`
	IsActive *bool     `json:"is_active,omitempty"`
}
