package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cloudpaste/cloudpaste/internal/models"
)

// ReadAccess carries the credentials supplied with a gated read.
type ReadAccess struct {
	Password string
	IsAdmin  bool
}

// gateShare applies the access checks shared by both share kinds: verified
// admins bypass the password gate; everyone else must present the correct
// password when one is set. Expiry is checked by the caller before this.
func gateShare(base *models.ShareBase, acc ReadAccess) error {
	if acc.IsAdmin {
		return nil
	}
	if !base.HasPassword() {
		return nil
	}
	if acc.Password == "" {
		return ErrPasswordRequired
	}
	if !VerifyPassword(acc.Password, *base.PasswordHash) {
		return ErrInvalidPassword
	}
	return nil
}

// consumeView commits one view against the share in table. The increment is
// a single conditional UPDATE, so concurrent readers of a limited share can
// never push view_count past max_views. It returns the committed count, or
// exhausted=true when the allowance was already used up.
func consumeView(db *gorm.DB, table, slug string) (count int, exhausted bool, err error) {
	res := db.Table(table).
		Where("slug = ? AND (max_views = 0 OR view_count < max_views)", slug).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, true, nil
	}
	err = db.Table(table).Select("view_count").Where("slug = ?", slug).Scan(&count).Error
	return count, false, err
}

// slugOwner reports which namespace, if any, already holds slug. Both
// namespaces are checked so a link can never be claimed twice across kinds.
func slugOwner(db *gorm.DB, slug string) (models.ShareKind, bool, error) {
	var n int64
	if err := db.Model(&models.TextShare{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return "", false, err
	}
	if n > 0 {
		return models.KindPaste, true, nil
	}
	if err := db.Model(&models.FileShare{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return "", false, err
	}
	if n > 0 {
		return models.KindFile, true, nil
	}
	return "", false, nil
}

// resolveSlug validates a custom link or generates a fresh one. Generated
// ids get the same cross-namespace existence check as custom ones, retried
// a few times before giving up.
func resolveSlug(db *gorm.DB, custom string) (string, error) {
	if custom != "" {
		if err := ValidateSlug(custom); err != nil {
			return "", err
		}
		kind, taken, err := slugOwner(db, custom)
		if err != nil {
			return "", err
		}
		if taken {
			return "", &SlugConflictError{Slug: custom, Kind: kind}
		}
		return custom, nil
	}

	for attempt := 0; attempt < 5; attempt++ {
		slug, err := GenerateID(DefaultIDLength)
		if err != nil {
			return "", err
		}
		_, taken, err := slugOwner(db, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
	}
	return "", errors.New("failed to generate a unique link")
}

// normalizeMaxViews clamps negative view limits to unlimited.
func normalizeMaxViews(maxViews int) int {
	if maxViews < 0 {
		return 0
	}
	return maxViews
}

// hashOptionalPassword digests a creation-time password, or nil when none
// was supplied (public share).
func hashOptionalPassword(password string) *string {
	if password == "" {
		return nil
	}
	h := HashPassword(password)
	return &h
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
