package repository

import (
	"database/sql"
	"fmt"
)

// VisitorRepository defines the interface for unique-visitor records
type VisitorRepository interface {
	Exists(shortCode, visitorHash string) (bool, error)
	Create(shortCode, visitorHash string, userAgent, referrer *string) error
	CountByShortCode(shortCode string) (int64, error)
	DeleteByShortCode(shortCode string) error
}

type visitorRepository struct {
	db *sql.DB
}

// NewVisitorRepository creates a new visitor repository
func NewVisitorRepository(db *sql.DB) VisitorRepository {
	return &visitorRepository{db: db}
}

// Exists reports whether this visitor hash was already seen for the code
func (r *visitorRepository) Exists(shortCode, visitorHash string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM url_visitors WHERE short_code = $1 AND visitor_hash = $2)`,
		shortCode, visitorHash,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check visitor: %w", err)
	}
	return exists, nil
}

// Create records a first visit. The unique index on (short_code,
// visitor_hash) collapses a concurrent double-insert to a single row.
func (r *visitorRepository) Create(shortCode, visitorHash string, userAgent, referrer *string) error {
	_, err := r.db.Exec(`
		INSERT INTO url_visitors (short_code, visitor_hash, user_agent, referrer)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (short_code, visitor_hash) DO NOTHING
	`, shortCode, visitorHash, userAgent, referrer)
	if err != nil {
		return fmt.Errorf("failed to record visitor: %w", err)
	}
	return nil
}

// CountByShortCode counts distinct visitors recorded for a short code
func (r *visitorRepository) CountByShortCode(shortCode string) (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM url_visitors WHERE short_code = $1`, shortCode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count visitors: %w", err)
	}
	return count, nil
}

// DeleteByShortCode removes every visitor record for a short code
func (r *visitorRepository) DeleteByShortCode(shortCode string) error {
	_, err := r.db.Exec(`DELETE FROM url_visitors WHERE short_code = $1`, shortCode)
	if err != nil {
		return fmt.Errorf("failed to delete visitors: %w", err)
	}
	return nil
}
