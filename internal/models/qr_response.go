package models

import "time"

// QRCodeResponse is one row of a QR code listing
type QRCodeResponse struct {
	ID                 string    `json:"id"`
	ShortCode          string    `json:"short_code"`
	OriginalURL        string    `json:"original_url"`
	GeneratedAt        time.Time `json:"generated_at"`
	TargetType         string    `json:"target_type"`
	IsDirect           bool      `json:"is_direct"`
	OwnedByCurrentUser bool      `json:"owned_by_current_user"`
	UserID             *string   `json:"user_id,omitempty"`
	SVGContent         string    `json:"svg_content"`
}
