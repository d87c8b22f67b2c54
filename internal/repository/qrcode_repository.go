package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"makemeshort/internal/entities"
)

// QRSearch filters the QR code listing. Search is matched as a
// case-insensitive regex over short code and original URL.
type QRSearch struct {
	Search     string
	TargetType string  // "original" or "shortened"; empty means both
	DirectOnly bool    // only codes carrying the direct- prefix
	UserID     *string // only codes owned by this user
}

// QRCodeRepository defines the interface for QR code database operations
type QRCodeRepository interface {
	Upsert(shortCode, originalURL, svgContent, targetType string, userID *string) (*entities.QRCode, error)
	FindByCodeAndTarget(shortCode, targetType string) (*entities.QRCode, error)
	FindDirectByURL(originalURL string) (*entities.QRCode, error)
	Search(params QRSearch) ([]*entities.QRCode, error)
	DeleteByShortCode(shortCode string) error
}

type qrCodeRepository struct {
	db *sql.DB
}

// NewQRCodeRepository creates a new QR code repository
func NewQRCodeRepository(db *sql.DB) QRCodeRepository {
	return &qrCodeRepository{db: db}
}

const qrColumns = "id, short_code, original_url, svg_content, target_type, user_id, generated_at"

func scanQRCode(row interface{ Scan(...interface{}) error }) (*entities.QRCode, error) {
	var qr entities.QRCode
	err := row.Scan(
		&qr.ID,
		&qr.ShortCode,
		&qr.OriginalURL,
		&qr.SVGContent,
		&qr.TargetType,
		&qr.UserID,
		&qr.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}
	return &qr, nil
}

// Upsert inserts the cache row for (short_code, target_type) or overwrites
// its content in place, stamping generated_at either way.
func (r *qrCodeRepository) Upsert(shortCode, originalURL, svgContent, targetType string, userID *string) (*entities.QRCode, error) {
	query := `
		INSERT INTO qr_codes (short_code, original_url, svg_content, target_type, user_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (short_code, target_type) DO UPDATE
		SET svg_content = EXCLUDED.svg_content,
		    original_url = EXCLUDED.original_url,
		    generated_at = now()
		RETURNING ` + qrColumns

	qr, err := scanQRCode(r.db.QueryRow(query, shortCode, originalURL, svgContent, targetType, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert QR code: %w", err)
	}
	return qr, nil
}

// FindByCodeAndTarget looks up the cached QR code for a (code, target) pair
func (r *qrCodeRepository) FindByCodeAndTarget(shortCode, targetType string) (*entities.QRCode, error) {
	query := `SELECT ` + qrColumns + ` FROM qr_codes WHERE short_code = $1 AND target_type = $2`

	qr, err := scanQRCode(r.db.QueryRow(query, shortCode, targetType))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find QR code: %w", err)
	}
	return qr, nil
}

// FindDirectByURL looks up a direct (code-less) QR code cached for a URL
func (r *qrCodeRepository) FindDirectByURL(originalURL string) (*entities.QRCode, error) {
	query := `
		SELECT ` + qrColumns + `
		FROM qr_codes
		WHERE original_url = $1
		  AND short_code LIKE $2
		  AND target_type = $3
		LIMIT 1`

	qr, err := scanQRCode(r.db.QueryRow(query, originalURL, entities.DirectCodePrefix+"%", entities.TargetOriginal))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find direct QR code: %w", err)
	}
	return qr, nil
}

// Search lists QR codes matching the filter
func (r *qrCodeRepository) Search(params QRSearch) ([]*entities.QRCode, error) {
	query := `SELECT ` + qrColumns + ` FROM qr_codes WHERE 1=1`
	var args []interface{}

	if params.Search != "" {
		args = append(args, params.Search)
		query += fmt.Sprintf(` AND (short_code ~* $%d OR original_url ~* $%d)`, len(args), len(args))
	}
	if params.TargetType == entities.TargetOriginal || params.TargetType == entities.TargetShortened {
		args = append(args, params.TargetType)
		query += fmt.Sprintf(` AND target_type = $%d`, len(args))
	}
	if params.DirectOnly {
		args = append(args, entities.DirectCodePrefix+"%")
		query += fmt.Sprintf(` AND short_code LIKE $%d`, len(args))
	}
	if params.UserID != nil {
		args = append(args, *params.UserID)
		query += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	query += ` ORDER BY generated_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search QR codes: %w", err)
	}
	defer rows.Close()

	var qrs []*entities.QRCode
	for rows.Next() {
		qr, err := scanQRCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan QR code: %w", err)
		}
		qrs = append(qrs, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating QR codes: %w", err)
	}
	return qrs, nil
}

// DeleteByShortCode removes every cached QR code for a short code
func (r *qrCodeRepository) DeleteByShortCode(shortCode string) error {
	_, err := r.db.Exec(`DELETE FROM qr_codes WHERE short_code = $1`, shortCode)
	if err != nil {
		return fmt.Errorf("failed to delete QR codes: %w", err)
	}
	return nil
}
