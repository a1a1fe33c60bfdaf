package services

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cloudpaste/cloudpaste/internal/models"
)

// PasteService owns the lifecycle of text shares.
type PasteService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewPasteService creates a paste service over the given database handle.
func NewPasteService(db *gorm.DB, log zerolog.Logger) *PasteService {
	return &PasteService{db: db, log: log}
}

// CreatePasteInput is the payload for a new text share.
type CreatePasteInput struct {
	Content    string
	IsMarkdown bool
	Password   string
	ExpiresIn  string
	CustomID   string
	MaxViews   int
}

// Create validates and persists a new text share. No write happens on any
// rejection path.
func (s *PasteService) Create(in CreatePasteInput, isAdmin bool) (*models.TextShare, error) {
	toggles, err := GetUploadToggles(s.db)
	if err != nil {
		return nil, err
	}
	if !toggles.TextEnabled && !isAdmin {
		return nil, ErrUploadDisabled
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrEmptyContent
	}

	slug, err := resolveSlug(s.db, in.CustomID)
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	paste := &models.TextShare{
		ShareBase: models.ShareBase{
			Slug:         slug,
			CreatedAt:    now,
			ExpiresAt:    CalculateExpiry(in.ExpiresIn, now),
			PasswordHash: hashOptionalPassword(in.Password),
			MaxViews:     normalizeMaxViews(in.MaxViews),
			ViewCount:    0,
		},
		Content:    in.Content,
		IsMarkdown: in.IsMarkdown,
	}
	if err := s.db.Create(paste).Error; err != nil {
		return nil, err
	}
	return paste, nil
}

// Get performs the gated read: lazy expiry, password gate (with admin
// bypass) and view accounting. Expired and exhausted shares are deleted and
// reported as not found, indistinguishable from ones that never existed.
func (s *PasteService) Get(slug string, acc ReadAccess) (*models.TextShare, error) {
	var paste models.TextShare
	if err := s.db.First(&paste, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if paste.IsExpired(nowUTC()) {
		if err := s.Delete(slug); err != nil {
			s.log.Warn().Err(err).Str("slug", slug).Msg("failed to delete expired paste")
		}
		return nil, ErrNotFound
	}

	if err := gateShare(&paste.ShareBase, acc); err != nil {
		return nil, err
	}

	if paste.MaxViews > 0 {
		count, exhausted, err := consumeView(s.db, paste.TableName(), slug)
		if err != nil {
			return nil, err
		}
		if exhausted {
			if err := s.Delete(slug); err != nil {
				s.log.Warn().Err(err).Str("slug", slug).Msg("failed to delete exhausted paste")
			}
			return nil, ErrNotFound
		}
		paste.ViewCount = count
	}

	return &paste, nil
}

// UpdatePasteInput is the admin edit payload for a text share.
type UpdatePasteInput struct {
	Content    string
	IsMarkdown bool
	ExpiresIn  string
	MaxViews   int
}

// Update applies an admin edit. The expiry is recomputed from now, not the
// original creation time, and changing the view limit forgives prior usage
// by resetting the counter.
func (s *PasteService) Update(slug string, in UpdatePasteInput) (*models.TextShare, error) {
	var paste models.TextShare
	if err := s.db.First(&paste, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrEmptyContent
	}

	paste.Content = in.Content
	paste.IsMarkdown = in.IsMarkdown
	paste.ExpiresAt = CalculateExpiry(in.ExpiresIn, nowUTC())

	newMax := normalizeMaxViews(in.MaxViews)
	if newMax != paste.MaxViews {
		paste.MaxViews = newMax
		paste.ViewCount = 0
	}

	if err := s.db.Save(&paste).Error; err != nil {
		return nil, err
	}
	return &paste, nil
}

// Delete removes a text share outright.
func (s *PasteService) Delete(slug string) error {
	return s.db.Delete(&models.TextShare{}, "slug = ?", slug).Error
}

// SetPassword rotates or clears the share password. An empty password
// removes the gate entirely.
func (s *PasteService) SetPassword(slug, password string) error {
	res := s.db.Model(&models.TextShare{}).Where("slug = ?", slug).
		Update("password_hash", hashOptionalPassword(password))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all text shares, newest first.
func (s *PasteService) List() ([]models.TextShare, error) {
	var pastes []models.TextShare
	if err := s.db.Order("created_at DESC").Find(&pastes).Error; err != nil {
		return nil, err
	}
	return pastes, nil
}
