package entities

import "time"

// ShortenedURL represents a shortened URL entity in the database
type ShortenedURL struct {
	ID          string     `json:"id"` // UUID
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	UserID      *string    `json:"user_id,omitempty"` // Pointer allows nil (for anonymous URLs), UUID
	Clicks      int64      `json:"clicks"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"` // Pointer allows nil (no expiration)
}

// IsExpired reports whether the URL is past its expiry. URLs without an
// expires_at never expire.
func (u *ShortenedURL) IsExpired() bool {
	return u.ExpiresAt != nil && time.Now().After(*u.ExpiresAt)
}
