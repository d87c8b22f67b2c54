package service

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"makemeshort/internal/entities"
	"makemeshort/internal/repository"
)

// In-memory repository fakes backing the service tests. They mirror the
// Postgres repositories' contracts, sentinel errors included.

type fakeURLRepo struct {
	mu   sync.Mutex
	urls map[string]*entities.ShortenedURL
}

func newFakeURLRepo() *fakeURLRepo {
	return &fakeURLRepo{urls: make(map[string]*entities.ShortenedURL)}
}

func (f *fakeURLRepo) Create(shortCode, originalURL string, userID *string, expiresAt *time.Time) (*entities.ShortenedURL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.urls[shortCode]; ok {
		return nil, repository.ErrDuplicate
	}
	url := &entities.ShortenedURL{
		ID:          uuid.NewString(),
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		UserID:      userID,
		CreatedAt:   time.Now(),
		ExpiresAt:   expiresAt,
	}
	f.urls[shortCode] = url
	clone := *url
	return &clone, nil
}

func (f *fakeURLRepo) FindByShortCode(shortCode string) (*entities.ShortenedURL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	url, ok := f.urls[shortCode]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *url
	return &clone, nil
}

func (f *fakeURLRepo) ExistsByShortCode(shortCode string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.urls[shortCode]
	return ok, nil
}

func (f *fakeURLRepo) IncrementClicks(shortCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	url, ok := f.urls[shortCode]
	if !ok {
		return repository.ErrNotFound
	}
	url.Clicks++
	return nil
}

func (f *fakeURLRepo) Delete(shortCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.urls[shortCode]; !ok {
		return repository.ErrNotFound
	}
	delete(f.urls, shortCode)
	return nil
}

func (f *fakeURLRepo) Search(search string, userID *string) ([]*entities.ShortenedURL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.ShortenedURL
	for _, url := range f.urls {
		if search != "" && !containsFold(url.ShortCode, search) && !containsFold(url.OriginalURL, search) {
			continue
		}
		if userID != nil && (url.UserID == nil || *url.UserID != *userID) {
			continue
		}
		clone := *url
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeURLRepo) clicks(shortCode string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if url, ok := f.urls[shortCode]; ok {
		return url.Clicks
	}
	return 0
}

type qrKey struct {
	code   string
	target string
}

type fakeQRRepo struct {
	mu      sync.Mutex
	qrs     map[qrKey]*entities.QRCode
	upserts int
}

func newFakeQRRepo() *fakeQRRepo {
	return &fakeQRRepo{qrs: make(map[qrKey]*entities.QRCode)}
}

func (f *fakeQRRepo) Upsert(shortCode, originalURL, svgContent, targetType string, userID *string) (*entities.QRCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	key := qrKey{code: shortCode, target: targetType}
	qr, ok := f.qrs[key]
	if !ok {
		qr = &entities.QRCode{
			ID:         uuid.NewString(),
			ShortCode:  shortCode,
			TargetType: targetType,
			UserID:     userID,
		}
		f.qrs[key] = qr
	}
	qr.OriginalURL = originalURL
	qr.SVGContent = svgContent
	qr.GeneratedAt = time.Now()
	clone := *qr
	return &clone, nil
}

func (f *fakeQRRepo) FindByCodeAndTarget(shortCode, targetType string) (*entities.QRCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	qr, ok := f.qrs[qrKey{code: shortCode, target: targetType}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *qr
	return &clone, nil
}

func (f *fakeQRRepo) FindDirectByURL(originalURL string) (*entities.QRCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, qr := range f.qrs {
		if key.target != entities.TargetOriginal {
			continue
		}
		if qr.OriginalURL == originalURL && qr.IsDirect() {
			clone := *qr
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeQRRepo) Search(params repository.QRSearch) ([]*entities.QRCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.QRCode
	for _, qr := range f.qrs {
		if params.Search != "" && !containsFold(qr.ShortCode, params.Search) && !containsFold(qr.OriginalURL, params.Search) {
			continue
		}
		if params.TargetType == entities.TargetOriginal || params.TargetType == entities.TargetShortened {
			if qr.TargetType != params.TargetType {
				continue
			}
		}
		if params.DirectOnly && !qr.IsDirect() {
			continue
		}
		if params.UserID != nil && (qr.UserID == nil || *qr.UserID != *params.UserID) {
			continue
		}
		clone := *qr
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeQRRepo) DeleteByShortCode(shortCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.qrs {
		if key.code == shortCode {
			delete(f.qrs, key)
		}
	}
	return nil
}

func (f *fakeQRRepo) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

type fakeVisitorRepo struct {
	mu   sync.Mutex
	seen map[string]map[string]bool
}

func newFakeVisitorRepo() *fakeVisitorRepo {
	return &fakeVisitorRepo{seen: make(map[string]map[string]bool)}
}

func (f *fakeVisitorRepo) Exists(shortCode, visitorHash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[shortCode][visitorHash], nil
}

func (f *fakeVisitorRepo) Create(shortCode, visitorHash string, userAgent, referrer *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen[shortCode] == nil {
		f.seen[shortCode] = make(map[string]bool)
	}
	f.seen[shortCode][visitorHash] = true
	return nil
}

func (f *fakeVisitorRepo) CountByShortCode(shortCode string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.seen[shortCode])), nil
}

func (f *fakeVisitorRepo) DeleteByShortCode(shortCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.seen, shortCode)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (f *fakeUserRepo) Create(username string, email, fullName *string, passwordHash string, roles []string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return nil, repository.ErrDuplicate
		}
	}
	now := time.Now()
	user := &entities.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsActive:     true,
	}
	f.users[user.ID] = user
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(id string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) ListExcept(userID string) ([]*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.User
	for id, u := range f.users {
		if id == userID {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(id string, upd repository.UserUpdate) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Username != nil {
		for otherID, other := range f.users {
			if otherID != id && other.Username == *upd.Username {
				return nil, repository.ErrDuplicate
			}
		}
		u.Username = *upd.Username
	}
	if upd.FullName != nil {
		u.FullName = upd.FullName
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Roles != nil {
		u.Roles = *upd.Roles
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	u.UpdatedAt = time.Now()
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) TouchLastLogin(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
