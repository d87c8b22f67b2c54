package models

// CreateQRRequest represents the request body for direct QR generation
type CreateQRRequest struct {
	URL             string `json:"url" binding:"required,url"`
	Size            *int   `json:"size,omitempty" binding:"omitempty,min=64,max=2048"`
	ForceRegenerate *bool  `json:"force_regenerate,omitempty"`
}
