package services

import (
	"crypto/subtle"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cloudpaste/cloudpaste/internal/models"
)

// AdminService is the management surface: credential verification, unified
// share listing, direct mutations and the storage/toggle views.
type AdminService struct {
	db       *gorm.DB
	pastes   *PasteService
	files    *FileService
	baseURL  string
	username string
	password string
	log      zerolog.Logger
}

// NewAdminService wires the admin gateway over both share services.
func NewAdminService(db *gorm.DB, pastes *PasteService, files *FileService, baseURL, username, password string, log zerolog.Logger) *AdminService {
	return &AdminService{
		db:       db,
		pastes:   pastes,
		files:    files,
		baseURL:  baseURL,
		username: username,
		password: password,
		log:      log,
	}
}

// VerifyCredentials checks the configured admin username/password pair in
// constant time. An empty configured password disables admin access.
func (s *AdminService) VerifyCredentials(username, password string) bool {
	if s.password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	return userOK && passOK
}

// ShareSummary is one row of the unified admin listing.
type ShareSummary struct {
	ID          string           `json:"id"`
	Kind        models.ShareKind `json:"kind"`
	CreatedAt   time.Time        `json:"createdAt"`
	ExpiresAt   *time.Time       `json:"expiresAt"`
	HasPassword bool             `json:"hasPassword"`
	MaxViews    int              `json:"maxViews"`
	ViewCount   int              `json:"viewCount"`
	URL         string           `json:"url"`
	DownloadURL string           `json:"downloadUrl,omitempty"`
	Filename    string           `json:"filename,omitempty"`
	SizeBytes   int64            `json:"sizeBytes,omitempty"`
	IsMarkdown  bool             `json:"isMarkdown,omitempty"`
}

// ListShares concatenates both namespaces, newest first. A failure loading
// one namespace is logged and the other is still returned.
func (s *AdminService) ListShares() ([]ShareSummary, error) {
	summaries := make([]ShareSummary, 0)

	pastes, err := s.pastes.List()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to list text shares")
	}
	for _, p := range pastes {
		summaries = append(summaries, ShareSummary{
			ID:          p.Slug,
			Kind:        models.KindPaste,
			CreatedAt:   p.CreatedAt,
			ExpiresAt:   p.ExpiresAt,
			HasPassword: p.HasPassword(),
			MaxViews:    p.MaxViews,
			ViewCount:   p.ViewCount,
			URL:         s.ShareURL(models.KindPaste, p.Slug),
			IsMarkdown:  p.IsMarkdown,
		})
	}

	files, err := s.files.List()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to list file shares")
	}
	for _, f := range files {
		summaries = append(summaries, ShareSummary{
			ID:          f.Slug,
			Kind:        models.KindFile,
			CreatedAt:   f.CreatedAt,
			ExpiresAt:   f.ExpiresAt,
			HasPassword: f.HasPassword(),
			MaxViews:    f.MaxViews,
			ViewCount:   f.ViewCount,
			URL:         s.ShareURL(models.KindFile, f.Slug),
			DownloadURL: s.DownloadURL(f.Slug),
			Filename:    f.Filename,
			SizeBytes:   f.SizeBytes,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// DeleteShare removes a share from the named namespace.
func (s *AdminService) DeleteShare(kind models.ShareKind, slug string) error {
	switch kind {
	case models.KindPaste:
		return s.pastes.Delete(slug)
	case models.KindFile:
		return s.files.Delete(slug)
	default:
		return fmt.Errorf("unknown share kind %q", kind)
	}
}

// SetSharePassword rotates the share password; an empty value clears it and
// the share becomes public.
func (s *AdminService) SetSharePassword(kind models.ShareKind, slug, password string) error {
	switch kind {
	case models.KindPaste:
		return s.pastes.SetPassword(slug, password)
	case models.KindFile:
		return s.files.SetPassword(slug, password)
	default:
		return fmt.Errorf("unknown share kind %q", kind)
	}
}

// StorageUsage is the aggregate file storage report.
type StorageUsage struct {
	Used       int64   `json:"used"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

// GetStorageUsage sums live file sizes against the configured ceiling.
func (s *AdminService) GetStorageUsage() (StorageUsage, error) {
	used, err := s.files.Usage()
	if err != nil {
		return StorageUsage{}, err
	}
	usage := StorageUsage{Used: used, Total: s.files.Quota()}
	if usage.Total > 0 {
		usage.Percentage = float64(used) / float64(usage.Total) * 100
	}
	return usage, nil
}

// GetUploadToggles reads the submission switches.
func (s *AdminService) GetUploadToggles() (UploadToggles, error) {
	return GetUploadToggles(s.db)
}

// SetUploadToggles persists the submission switches.
func (s *AdminService) SetUploadToggles(t UploadToggles) error {
	return SetUploadToggles(s.db, t)
}

// ShareURL derives the public page URL for a share.
func (s *AdminService) ShareURL(kind models.ShareKind, slug string) string {
	return fmt.Sprintf("%s/share/%s/%s", s.baseURL, kind, slug)
}

// DownloadURL derives the direct-download URL for a file share.
func (s *AdminService) DownloadURL(slug string) string {
	return fmt.Sprintf("%s/download/%s", s.baseURL, slug)
}
