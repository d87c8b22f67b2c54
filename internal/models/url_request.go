package models

// CreateURLRequest represents the request body for creating a short URL
type CreateURLRequest struct {
	URL           string  `json:"url" binding:"required,url"`
	CustomCode    *string `json:"custom_code,omitempty"`
	ExpiresInDays *int    `json:"expires_in_days,omitempty" binding:"omitempty,min=1"`
}
