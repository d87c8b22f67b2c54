package entities

import "time"

// URLVisitor records the first visit to a short code from a hashed IP. The
// (short_code, visitor_hash) pair is unique, so the table doubles as the
// dedup set for unique-visitor counting.
type URLVisitor struct {
	ID          string    `json:"id"` // UUID
	ShortCode   string    `json:"short_code"`
	VisitorHash string    `json:"visitor_hash"`
	VisitedAt   time.Time `json:"visited_at"`
	UserAgent   *string   `json:"user_agent,omitempty"`
	Referrer    *string   `json:"referrer,omitempty"`
}
