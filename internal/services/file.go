package services

import (
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	"gorm.io/gorm"

	"github.com/cloudpaste/cloudpaste/internal/models"
	"github.com/cloudpaste/cloudpaste/internal/storage"
)

// FileService owns the lifecycle of file shares: metadata in the database,
// blobs in the storage backend.
type FileService struct {
	db          *gorm.DB
	blobs       storage.BlobStore
	maxFileSize int64
	quota       int64
	log         zerolog.Logger
}

// NewFileService creates a file service over the given database handle and
// blob backend. maxFileSize caps a single upload; quota caps the sum of all
// live file sizes.
func NewFileService(db *gorm.DB, blobs storage.BlobStore, maxFileSize, quota int64, log zerolog.Logger) *FileService {
	return &FileService{
		db:          db,
		blobs:       blobs,
		maxFileSize: maxFileSize,
		quota:       quota,
		log:         log,
	}
}

// FileOptions are the share settings attached to an upload.
type FileOptions struct {
	Password  string
	ExpiresIn string
	CustomID  string
	MaxViews  int
}

// Save validates an uploaded file against the per-file ceiling and the
// aggregate quota, stores the blob and persists the metadata record. On any
// rejection nothing is written; a blob already stored is removed if the
// metadata insert fails afterwards.
func (s *FileService) Save(fh *multipart.FileHeader, opts FileOptions, isAdmin bool) (*models.FileShare, error) {
	toggles, err := GetUploadToggles(s.db)
	if err != nil {
		return nil, err
	}
	if !toggles.FileEnabled && !isAdmin {
		return nil, ErrUploadDisabled
	}
	if fh.Size == 0 {
		return nil, ErrEmptyContent
	}
	if fh.Size > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	used, err := s.Usage()
	if err != nil {
		return nil, err
	}
	if used+fh.Size > s.quota {
		return nil, ErrQuotaExceeded
	}

	slug, err := resolveSlug(s.db, opts.CustomID)
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	objectKey := ksuid.New().String() + filepath.Ext(fh.Filename)
	if err := s.blobs.Save(objectKey, src); err != nil {
		return nil, err
	}

	now := nowUTC()
	file := &models.FileShare{
		ShareBase: models.ShareBase{
			Slug:         slug,
			CreatedAt:    now,
			ExpiresAt:    CalculateExpiry(opts.ExpiresIn, now),
			PasswordHash: hashOptionalPassword(opts.Password),
			MaxViews:     normalizeMaxViews(opts.MaxViews),
			ViewCount:    0,
		},
		Filename:  fh.Filename,
		MimeType:  fh.Header.Get("Content-Type"),
		SizeBytes: fh.Size,
		ObjectKey: objectKey,
	}
	if err := s.db.Create(file).Error; err != nil {
		if derr := s.blobs.Delete(objectKey); derr != nil {
			s.log.Warn().Err(derr).Str("objectKey", objectKey).Msg("failed to clean up orphaned blob")
		}
		return nil, err
	}
	return file, nil
}

// Get performs the gated read of a file share's metadata, with the same
// lazy-expiry and view accounting semantics as text shares.
func (s *FileService) Get(slug string, acc ReadAccess) (*models.FileShare, error) {
	var file models.FileShare
	if err := s.db.First(&file, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if file.IsExpired(nowUTC()) {
		if err := s.Delete(slug); err != nil {
			s.log.Warn().Err(err).Str("slug", slug).Msg("failed to delete expired file share")
		}
		return nil, ErrNotFound
	}

	if err := gateShare(&file.ShareBase, acc); err != nil {
		return nil, err
	}

	if file.MaxViews > 0 {
		count, exhausted, err := consumeView(s.db, file.TableName(), slug)
		if err != nil {
			return nil, err
		}
		if exhausted {
			if err := s.Delete(slug); err != nil {
				s.log.Warn().Err(err).Str("slug", slug).Msg("failed to delete exhausted file share")
			}
			return nil, ErrNotFound
		}
		file.ViewCount = count
	}

	return &file, nil
}

// Open returns a reader over the blob of an already-gated file share.
func (s *FileService) Open(file *models.FileShare) (io.ReadCloser, error) {
	return s.blobs.Open(file.ObjectKey)
}

// UpdateSettings applies an admin edit to expiry and view limit. Expiry is
// recomputed from now; changing the view limit resets the counter.
func (s *FileService) UpdateSettings(slug, expiresIn string, maxViews int) (*models.FileShare, error) {
	var file models.FileShare
	if err := s.db.First(&file, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	file.ExpiresAt = CalculateExpiry(expiresIn, nowUTC())

	newMax := normalizeMaxViews(maxViews)
	if newMax != file.MaxViews {
		file.MaxViews = newMax
		file.ViewCount = 0
	}

	if err := s.db.Save(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// Delete removes the metadata record and its blob. A blob deletion failure
// is logged but does not block removing the record.
func (s *FileService) Delete(slug string) error {
	var file models.FileShare
	if err := s.db.First(&file, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := s.blobs.Delete(file.ObjectKey); err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Str("objectKey", file.ObjectKey).Msg("failed to delete blob")
	}
	return s.db.Delete(&models.FileShare{}, "slug = ?", slug).Error
}

// SetPassword rotates or clears the share password.
func (s *FileService) SetPassword(slug, password string) error {
	res := s.db.Model(&models.FileShare{}).Where("slug = ?", slug).
		Update("password_hash", hashOptionalPassword(password))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all file shares, newest first.
func (s *FileService) List() ([]models.FileShare, error) {
	var files []models.FileShare
	if err := s.db.Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// Usage sums the sizes of all live file shares. Recomputed on every call.
func (s *FileService) Usage() (int64, error) {
	var used int64
	err := s.db.Model(&models.FileShare{}).
		Select("COALESCE(SUM(size_bytes), 0)").
		Scan(&used).Error
	return used, err
}

// Quota returns the configured total-storage ceiling.
func (s *FileService) Quota() int64 {
	return s.quota
}
