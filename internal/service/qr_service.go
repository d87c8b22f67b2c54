package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"makemeshort/internal/entities"
	"makemeshort/internal/models"
	"makemeshort/internal/qrsvg"
	"makemeshort/internal/repository"
)

// QRService defines the interface for QR code business logic
type QRService interface {
	GenerateForCode(shortCode, targetType string, force bool) (string, error)
	GetCached(shortCode, targetType string) (string, error)
	GenerateDirect(req *models.CreateQRRequest, userID *string) (string, error)
	List(params repository.QRSearch, currentUserID *string) ([]models.QRCodeResponse, error)
}

type qrService struct {
	urls    repository.URLRepository
	qrCodes repository.QRCodeRepository
	host    string
}

// NewQRService creates a new QR service
func NewQRService(urls repository.URLRepository, qrCodes repository.QRCodeRepository, host string) QRService {
	return &qrService{
		urls:    urls,
		qrCodes: qrCodes,
		host:    host,
	}
}

// GenerateForCode returns the SVG for a (short code, target type) pair,
// reusing the cached row unless force is set. Generation for an expired URL
// is refused.
func (s *qrService) GenerateForCode(shortCode, targetType string, force bool) (string, error) {
	url, err := s.urls.FindByShortCode(shortCode)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if url.IsExpired() {
		return "", ErrExpired
	}

	if !force {
		if qr, err := s.qrCodes.FindByCodeAndTarget(shortCode, targetType); err == nil {
			return qr.SVGContent, nil
		}
	}

	targetURL := url.OriginalURL
	if targetType == entities.TargetShortened {
		targetURL = fmt.Sprintf("%s/r/%s", s.host, shortCode)
	}

	svg, err := qrsvg.Render(targetURL, qrsvg.DefaultSize)
	if err != nil {
		return "", err
	}

	qr, err := s.qrCodes.Upsert(shortCode, url.OriginalURL, svg, targetType, url.UserID)
	if err != nil {
		return "", err
	}
	return qr.SVGContent, nil
}

// GetCached returns the cached SVG for a pair, without generating
func (s *qrService) GetCached(shortCode, targetType string) (string, error) {
	qr, err := s.qrCodes.FindByCodeAndTarget(shortCode, targetType)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return qr.SVGContent, nil
}

// GenerateDirect renders a QR code straight from a URL, without a short
// code. The cache row is keyed by the URL under a synthetic direct- id, so
// repeated requests for the same URL reuse one row.
func (s *qrService) GenerateDirect(req *models.CreateQRRequest, userID *string) (string, error) {
	existing, err := s.qrCodes.FindDirectByURL(req.URL)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	force := req.ForceRegenerate != nil && *req.ForceRegenerate
	if existing != nil && !force {
		return existing.SVGContent, nil
	}

	size := qrsvg.DefaultSize
	if req.Size != nil {
		size = *req.Size
	}

	svg, err := qrsvg.Render(req.URL, size)
	if err != nil {
		return "", err
	}

	code := entities.DirectCodePrefix + strings.SplitN(uuid.NewString(), "-", 2)[0]
	if existing != nil {
		// Keep the synthetic id stable across regenerations
		code = existing.ShortCode
	}

	qr, err := s.qrCodes.Upsert(code, req.URL, svg, entities.TargetOriginal, userID)
	if err != nil {
		return "", err
	}
	return qr.SVGContent, nil
}

// List returns QR codes matching the filter, annotated for the caller
func (s *qrService) List(params repository.QRSearch, currentUserID *string) ([]models.QRCodeResponse, error) {
	qrs, err := s.qrCodes.Search(params)
	if err != nil {
		return nil, err
	}

	responses := make([]models.QRCodeResponse, 0, len(qrs))
	for _, qr := range qrs {
		owned := currentUserID != nil && qr.UserID != nil && *currentUserID == *qr.UserID
		responses = append(responses, models.QRCodeResponse{
			ID:                 qr.ID,
			ShortCode:          qr.ShortCode,
			OriginalURL:        qr.OriginalURL,
			GeneratedAt:        qr.GeneratedAt,
			TargetType:         qr.TargetType,
			IsDirect:           qr.IsDirect(),
			OwnedByCurrentUser: owned,
			UserID:             qr.UserID,
			SVGContent:         qr.SVGContent,
		})
	}
	return responses, nil
}
