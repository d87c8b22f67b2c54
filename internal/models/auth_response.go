package models

// LoginResponse carries the issued token and the sanitized user
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
