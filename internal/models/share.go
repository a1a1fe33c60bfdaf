package models

import (
	"time"
)

// ShareKind distinguishes the two share namespaces.
type ShareKind string

const (
	KindPaste ShareKind = "paste"
	KindFile  ShareKind = "file"
)

// Valid reports whether k names a known share namespace.
func (k ShareKind) Valid() bool {
	return k == KindPaste || k == KindFile
}

// ShareBase carries the lifecycle fields common to both share kinds:
// identity, expiry, password gating and view accounting.
type ShareBase struct {
	Slug         string     `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"createdAt"`
	ExpiresAt    *time.Time `gorm:"index" json:"expiresAt"`
	PasswordHash *string    `json:"-"`
	MaxViews     int        `gorm:"not null;default:0" json:"maxViews"` // 0 = unlimited
	ViewCount    int        `gorm:"not null;default:0" json:"viewCount"`
}

// IsExpired reports whether the share's expiry lies before now.
// A nil expiry never expires.
func (s *ShareBase) IsExpired(now time.Time) bool {
	if s.ExpiresAt == nil {
		return false
	}
	return now.After(*s.ExpiresAt)
}

// HasPassword reports whether reads of this share are password gated.
func (s *ShareBase) HasPassword() bool {
	return s.PasswordHash != nil && *s.PasswordHash != ""
}

// Exhausted reports whether the share has used up its view allowance.
func (s *ShareBase) Exhausted() bool {
	return s.MaxViews > 0 && s.ViewCount >= s.MaxViews
}

// TextShare is a stored text paste.
type TextShare struct {
	ShareBase
	Content    string `gorm:"not null" json:"content"`
	IsMarkdown bool   `gorm:"not null;default:false" json:"isMarkdown"`
}

func (TextShare) TableName() string {
	return "text_shares"
}

// FileShare is the metadata record for an uploaded file. The blob itself
// lives in the storage backend under ObjectKey.
type FileShare struct {
	ShareBase
	Filename  string `gorm:"not null" json:"filename"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `gorm:"not null" json:"sizeBytes"`
	ObjectKey string `gorm:"uniqueIndex;not null" json:"-"`
}

func (FileShare) TableName() string {
	return "file_shares"
}

// Setting is a keyed entry for global mutable state (upload toggles,
// last sweep marker). Kept in the store so there is no process-wide state.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (Setting) TableName() string {
	return "settings"
}
