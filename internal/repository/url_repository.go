package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"makemeshort/internal/entities"
)

// URLRepository defines the interface for shortened-URL database operations
type URLRepository interface {
	Create(shortCode, originalURL string, userID *string, expiresAt *time.Time) (*entities.ShortenedURL, error)
	FindByShortCode(shortCode string) (*entities.ShortenedURL, error)
	ExistsByShortCode(shortCode string) (bool, error)
	IncrementClicks(shortCode string) error
	Delete(shortCode string) error
	Search(search string, userID *string) ([]*entities.ShortenedURL, error)
}

type urlRepository struct {
	db *sql.DB
}

// NewURLRepository creates a new URL repository
func NewURLRepository(db *sql.DB) URLRepository {
	return &urlRepository{db: db}
}

const urlColumns = "id, short_code, original_url, user_id, clicks, created_at, expires_at"

func scanURL(row interface{ Scan(...interface{}) error }) (*entities.ShortenedURL, error) {
	var url entities.ShortenedURL
	err := row.Scan(
		&url.ID,
		&url.ShortCode,
		&url.OriginalURL,
		&url.UserID,
		&url.Clicks,
		&url.CreatedAt,
		&url.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// Create inserts a new shortened URL
func (r *urlRepository) Create(shortCode, originalURL string, userID *string, expiresAt *time.Time) (*entities.ShortenedURL, error) {
	query := `
		INSERT INTO urls (short_code, original_url, user_id, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + urlColumns

	url, err := scanURL(r.db.QueryRow(query, shortCode, originalURL, userID, expiresAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create URL: %w", err)
	}
	return url, nil
}

// FindByShortCode finds a URL by its short code, expired or not. Expiry is
// the service's call to make.
func (r *urlRepository) FindByShortCode(shortCode string) (*entities.ShortenedURL, error) {
	query := `SELECT ` + urlColumns + ` FROM urls WHERE short_code = $1`

	url, err := scanURL(r.db.QueryRow(query, shortCode))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find URL: %w", err)
	}
	return url, nil
}

// ExistsByShortCode reports whether a short code is already taken
func (r *urlRepository) ExistsByShortCode(shortCode string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM urls WHERE short_code = $1)`, shortCode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check short code: %w", err)
	}
	return exists, nil
}

// IncrementClicks bumps the click counter for a short code
func (r *urlRepository) IncrementClicks(shortCode string) error {
	_, err := r.db.Exec(`UPDATE urls SET clicks = clicks + 1 WHERE short_code = $1`, shortCode)
	if err != nil {
		return fmt.Errorf("failed to increment clicks: %w", err)
	}
	return nil
}

// Delete removes a URL by short code
func (r *urlRepository) Delete(shortCode string) error {
	result, err := r.db.Exec(`DELETE FROM urls WHERE short_code = $1`, shortCode)
	if err != nil {
		return fmt.Errorf("failed to delete URL: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search lists URLs, optionally filtered by a case-insensitive substring
// over short code / original URL and by owning user.
func (r *urlRepository) Search(search string, userID *string) ([]*entities.ShortenedURL, error) {
	query := `SELECT ` + urlColumns + ` FROM urls WHERE 1=1`
	var args []interface{}

	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(` AND (short_code ILIKE $%d OR original_url ILIKE $%d)`, len(args), len(args))
	}
	if userID != nil {
		args = append(args, *userID)
		query += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search URLs: %w", err)
	}
	defer rows.Close()

	var urls []*entities.ShortenedURL
	for rows.Next() {
		url, err := scanURL(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan URL: %w", err)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating URLs: %w", err)
	}
	return urls, nil
}
