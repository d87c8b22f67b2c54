package models

import "time"

// CreateURLResponse represents the response after creating a short URL
type CreateURLResponse struct {
	OriginalURL string     `json:"original_url"`
	ShortURL    string     `json:"short_url"` // Full short URL (host + /r/ + code)
	ShortCode   string     `json:"short_code"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	UserID      *string    `json:"user_id,omitempty"`
}

// URLListItem is one row of a URL listing, enriched with analytics and QR
// presence flags
type URLListItem struct {
	ID                 string     `json:"id"`
	OriginalURL        string     `json:"original_url"`
	ShortCode          string     `json:"short_code"`
	CreatedAt          time.Time  `json:"created_at"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	HasShortenedQR     bool       `json:"has_shortened_qr"`
	HasOriginalQR      bool       `json:"has_original_qr"`
	Clicks             int64      `json:"clicks"`
	UniqueClicks       int64      `json:"unique_clicks"`
	OwnedByCurrentUser bool       `json:"owned_by_current_user"`
	UserID             *string    `json:"user_id,omitempty"`
}

// URLAnalyticsResponse represents per-URL analytics
type URLAnalyticsResponse struct {
	ShortCode              string     `json:"short_code"`
	OriginalURL            string     `json:"original_url"`
	CreatedAt              time.Time  `json:"created_at"`
	ExpiresAt              *time.Time `json:"expires_at,omitempty"`
	Clicks                 int64      `json:"clicks"`
	UniqueClicks           int64      `json:"unique_clicks"`
	HasShortenedQR         bool       `json:"has_shortened_qr"`
	HasOriginalQR          bool       `json:"has_original_qr"`
	ShortenedQRGeneratedAt *time.Time `json:"shortened_qr_generated_at,omitempty"`
	OriginalQRGeneratedAt  *time.Time `json:"original_qr_generated_at,omitempty"`
	UserID                 *string    `json:"user_id,omitempty"`
}
