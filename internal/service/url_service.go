package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"makemeshort/internal/cache"
	"makemeshort/internal/entities"
	"makemeshort/internal/models"
	"makemeshort/internal/repository"
	"makemeshort/internal/visitor"
)

// Visit describes one hit on a redirect, used for click and unique-visitor
// accounting.
type Visit struct {
	IP        string
	UserAgent *string
	Referrer  *string
}

// URLService defines the interface for URL business logic
type URLService interface {
	CreateShortURL(req *models.CreateURLRequest, userID *string) (*models.CreateURLResponse, error)
	ResolveRedirect(shortCode string, visit Visit) (string, error)
	ListURLs(search string, ownedOnly bool, currentUserID *string) ([]models.URLListItem, error)
	ListUserURLs(userID, search string, currentUserID *string) ([]models.URLListItem, error)
	DeleteURL(shortCode, callerID string) error
	GetAnalytics(shortCode string) (*models.URLAnalyticsResponse, error)
}

type urlService struct {
	urls     repository.URLRepository
	qrCodes  repository.QRCodeRepository
	visitors repository.VisitorRepository
	cache    cache.Cache
	hasher   *visitor.Hasher
	host     string
	ctx      context.Context
}

// NewURLService creates a new URL service. cacheClient may be nil; lookups
// then always hit the store.
func NewURLService(urls repository.URLRepository, qrCodes repository.QRCodeRepository, visitors repository.VisitorRepository, cacheClient cache.Cache, hasher *visitor.Hasher, host string) URLService {
	return &urlService{
		urls:     urls,
		qrCodes:  qrCodes,
		visitors: visitors,
		cache:    cacheClient,
		hasher:   hasher,
		host:     host,
		ctx:      context.Background(),
	}
}

const (
	codeLength      = 6
	maxCodeAttempts = 10
	urlCacheTTL     = time.Hour
)

var codePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Reserved short codes that cannot be used
var reservedCodes = map[string]bool{
	"api":       true,
	"r":         true,
	"admin":     true,
	"health":    true,
	"auth":      true,
	"login":     true,
	"signup":    true,
	"init":      true,
	"shorten":   true,
	"urls":      true,
	"users":     true,
	"qr":        true,
	"analytics": true,
}

// cachedURL is the redirect-path cache entry
type cachedURL struct {
	OriginalURL string     `json:"original_url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

func (s *urlService) validateCustomCode(code string) error {
	if len(code) < 3 || len(code) > 20 {
		return fmt.Errorf("%w: custom code must be 3-20 characters long", ErrValidation)
	}
	if !codePattern.MatchString(code) {
		return fmt.Errorf("%w: custom code can only contain letters, numbers, hyphens, and underscores", ErrValidation)
	}
	if reservedCodes[strings.ToLower(code)] {
		return fmt.Errorf("%w: custom code '%s' is reserved", ErrValidation, code)
	}
	return nil
}

// generateCode returns a random URL-safe short code
func generateCode() (string, error) {
	bytes := make([]byte, codeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes)[:codeLength], nil
}

func (s *urlService) shortURLFor(code string) string {
	return fmt.Sprintf("%s/r/%s", s.host, code)
}

// CreateShortURL creates a new short URL, honoring a validated custom code
// or generating a random one with collision retry.
func (s *urlService) CreateShortURL(req *models.CreateURLRequest, userID *string) (*models.CreateURLResponse, error) {
	var shortCode string

	if req.CustomCode != nil && *req.CustomCode != "" {
		customCode := strings.TrimSpace(*req.CustomCode)
		if err := s.validateCustomCode(customCode); err != nil {
			return nil, err
		}

		taken, err := s.urls.ExistsByShortCode(customCode)
		if err != nil {
			return nil, fmt.Errorf("failed to check custom code: %w", err)
		}
		if taken {
			return nil, ErrCodeTaken
		}
		shortCode = customCode
	} else {
		for attempt := 0; ; attempt++ {
			code, err := generateCode()
			if err != nil {
				return nil, err
			}
			taken, err := s.urls.ExistsByShortCode(code)
			if err != nil {
				return nil, fmt.Errorf("failed to check short code: %w", err)
			}
			if !taken {
				shortCode = code
				break
			}
			if attempt == maxCodeAttempts-1 {
				return nil, fmt.Errorf("failed to generate unique short code after %d attempts", maxCodeAttempts)
			}
		}
	}

	var expiresAt *time.Time
	if req.ExpiresInDays != nil {
		t := time.Now().Add(time.Duration(*req.ExpiresInDays) * 24 * time.Hour)
		expiresAt = &t
	}

	url, err := s.urls.Create(shortCode, req.URL, userID, expiresAt)
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost a race on the unique index
		return nil, ErrCodeTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create URL: %w", err)
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, "url:"+url.ShortCode, cachedURL{
			OriginalURL: url.OriginalURL,
			ExpiresAt:   url.ExpiresAt,
		}, urlCacheTTL)
	}

	return &models.CreateURLResponse{
		OriginalURL: url.OriginalURL,
		ShortURL:    s.shortURLFor(url.ShortCode),
		ShortCode:   url.ShortCode,
		ExpiresAt:   url.ExpiresAt,
		UserID:      url.UserID,
	}, nil
}

// ResolveRedirect returns the original URL for a short code and dispatches
// click/visitor accounting without delaying the caller.
func (s *urlService) ResolveRedirect(shortCode string, visit Visit) (string, error) {
	if s.cache != nil {
		var cached cachedURL
		if err := s.cache.GetJSON(s.ctx, "url:"+shortCode, &cached); err == nil && cached.OriginalURL != "" {
			if cached.ExpiresAt != nil && time.Now().After(*cached.ExpiresAt) {
				s.cache.Delete(s.ctx, "url:"+shortCode)
				return "", ErrExpired
			}
			go s.recordVisit(shortCode, visit)
			return cached.OriginalURL, nil
		}
	}

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

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, "url:"+shortCode, cachedURL{
			OriginalURL: url.OriginalURL,
			ExpiresAt:   url.ExpiresAt,
		}, urlCacheTTL)
	}

	go s.recordVisit(shortCode, visit)
	return url.OriginalURL, nil
}

// recordVisit runs detached from the redirect response. Failures are logged
// and swallowed; the redirect never waits on analytics.
func (s *urlService) recordVisit(shortCode string, visit Visit) {
	if err := s.urls.IncrementClicks(shortCode); err != nil {
		log.Printf("Warning: failed to increment clicks for %s: %v", shortCode, err)
	}

	visitorHash := s.hasher.HashIP(visit.IP)
	seen, err := s.visitors.Exists(shortCode, visitorHash)
	if err != nil {
		log.Printf("Warning: failed to check visitor for %s: %v", shortCode, err)
		return
	}
	if seen {
		return
	}
	if err := s.visitors.Create(shortCode, visitorHash, visit.UserAgent, visit.Referrer); err != nil {
		log.Printf("Warning: failed to record visitor for %s: %v", shortCode, err)
	}
}

func (s *urlService) enrich(url *entities.ShortenedURL, currentUserID *string) models.URLListItem {
	uniqueClicks, err := s.visitors.CountByShortCode(url.ShortCode)
	if err != nil {
		uniqueClicks = 0
	}

	_, errShort := s.qrCodes.FindByCodeAndTarget(url.ShortCode, entities.TargetShortened)
	_, errOrig := s.qrCodes.FindByCodeAndTarget(url.ShortCode, entities.TargetOriginal)

	owned := currentUserID != nil && url.UserID != nil && *currentUserID == *url.UserID

	return models.URLListItem{
		ID:                 url.ID,
		OriginalURL:        url.OriginalURL,
		ShortCode:          url.ShortCode,
		CreatedAt:          url.CreatedAt,
		ExpiresAt:          url.ExpiresAt,
		HasShortenedQR:     errShort == nil,
		HasOriginalQR:      errOrig == nil,
		Clicks:             url.Clicks,
		UniqueClicks:       uniqueClicks,
		OwnedByCurrentUser: owned,
		UserID:             url.UserID,
	}
}

// ListURLs lists all URLs, with optional substring search and owned-only
// filtering.
func (s *urlService) ListURLs(search string, ownedOnly bool, currentUserID *string) ([]models.URLListItem, error) {
	var ownerFilter *string
	if ownedOnly && currentUserID != nil {
		ownerFilter = currentUserID
	}

	urls, err := s.urls.Search(search, ownerFilter)
	if err != nil {
		return nil, err
	}

	items := make([]models.URLListItem, 0, len(urls))
	for _, url := range urls {
		items = append(items, s.enrich(url, currentUserID))
	}
	return items, nil
}

// ListUserURLs lists the URLs owned by a specific user
func (s *urlService) ListUserURLs(userID, search string, currentUserID *string) ([]models.URLListItem, error) {
	urls, err := s.urls.Search(search, &userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.URLListItem, 0, len(urls))
	for _, url := range urls {
		items = append(items, s.enrich(url, currentUserID))
	}
	return items, nil
}

// DeleteURL removes a URL after an ownership check, then best-effort cascades
// to its QR codes and visitor records. Partial completion is acceptable.
func (s *urlService) DeleteURL(shortCode, callerID string) error {
	url, err := s.urls.FindByShortCode(shortCode)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if url.UserID == nil || *url.UserID != callerID {
		return ErrForbidden
	}

	if err := s.urls.Delete(shortCode); err != nil {
		return err
	}

	if err := s.qrCodes.DeleteByShortCode(shortCode); err != nil {
		log.Printf("Warning: failed to delete QR codes for %s: %v", shortCode, err)
	}
	if err := s.visitors.DeleteByShortCode(shortCode); err != nil {
		log.Printf("Warning: failed to delete visitors for %s: %v", shortCode, err)
	}
	if s.cache != nil {
		s.cache.Delete(s.ctx, "url:"+shortCode)
	}
	return nil
}

// GetAnalytics reports clicks, unique visitors and QR cache state for a URL
func (s *urlService) GetAnalytics(shortCode string) (*models.URLAnalyticsResponse, error) {
	url, err := s.urls.FindByShortCode(shortCode)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	uniqueClicks, err := s.visitors.CountByShortCode(shortCode)
	if err != nil {
		return nil, err
	}

	resp := &models.URLAnalyticsResponse{
		ShortCode:    url.ShortCode,
		OriginalURL:  url.OriginalURL,
		CreatedAt:    url.CreatedAt,
		ExpiresAt:    url.ExpiresAt,
		Clicks:       url.Clicks,
		UniqueClicks: uniqueClicks,
		UserID:       url.UserID,
	}

	if qr, err := s.qrCodes.FindByCodeAndTarget(shortCode, entities.TargetShortened); err == nil {
		resp.HasShortenedQR = true
		resp.ShortenedQRGeneratedAt = &qr.GeneratedAt
	}
	if qr, err := s.qrCodes.FindByCodeAndTarget(shortCode, entities.TargetOriginal); err == nil {
		resp.HasOriginalQR = true
		resp.OriginalQRGeneratedAt = &qr.GeneratedAt
	}

	return resp, nil
}
