package entities

import (
	"strings"
	"time"
)

// Target types a QR code can encode.
const (
	TargetOriginal  = "original"  // QR points at the original URL
	TargetShortened = "shortened" // QR points at the short redirect URL
)

// DirectCodePrefix marks QR codes generated straight from a URL, without a
// backing short code. The rest of the code is a synthetic id.
const DirectCodePrefix = "direct-"

// QRCode is a cached rendered QR image. At most one row exists per
// (short_code, target_type) pair; regeneration overwrites in place.
type QRCode struct {
	ID          string    `json:"id"` // UUID
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	SVGContent  string    `json:"svg_content"`
	TargetType  string    `json:"target_type"`
	UserID      *string   `json:"user_id,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// IsDirect reports whether the QR code was generated without a short code.
func (q *QRCode) IsDirect() bool {
	return strings.HasPrefix(q.ShortCode, DirectCodePrefix)
}

// NormalizeTargetType maps a query value to a valid target type, defaulting
// to the shortened URL.
func NormalizeTargetType(v string) string {
	if v == TargetOriginal {
		return TargetOriginal
	}
	return TargetShortened
}
