package services

import (
	"errors"
	"fmt"

	"github.com/cloudpaste/cloudpaste/internal/models"
)

var (
	// ErrNotFound covers missing, expired and view-exhausted shares alike;
	// callers cannot tell the three apart.
	ErrNotFound = errors.New("share not found")

	ErrPasswordRequired = errors.New("password required")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrUploadDisabled   = errors.New("uploads are currently disabled")
	ErrQuotaExceeded    = errors.New("storage quota exceeded")
	ErrInvalidSlug      = errors.New("invalid link format (use letters, numbers, hyphens and underscores)")
	ErrEmptyContent     = errors.New("content cannot be empty")
	ErrFileTooLarge     = errors.New("file exceeds the maximum allowed size")
)

// SlugConflictError reports that a custom link is already claimed, and by
// which namespace. Returned before any write happens.
type SlugConflictError struct {
	Slug string
	Kind models.ShareKind
}

func (e *SlugConflictError) Error() string {
	return fmt.Sprintf("link %q is already used by a %s share", e.Slug, e.Kind)
}
