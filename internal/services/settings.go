package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cloudpaste/cloudpaste/internal/models"
)

// Setting keys for global mutable state. Kept as store entries so every
// request path reads the current value instead of a process-wide variable.
const (
	settingTextUpload  = "text_upload_enabled"
	settingFileUpload  = "file_upload_enabled"
	settingLastSweepAt = "last_sweep_at"
)

func getSetting(db *gorm.DB, key, fallback string) (string, error) {
	var s models.Setting
	if err := db.First(&s, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fallback, nil
		}
		return "", err
	}
	return s.Value, nil
}

func setSetting(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Setting{Key: key, Value: value}).Error
}

func getSettingBool(db *gorm.DB, key string, fallback bool) (bool, error) {
	raw, err := getSetting(db, key, strconv.FormatBool(fallback))
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, nil
	}
	return b, nil
}

// UploadToggles are the two switches gating new submissions.
type UploadToggles struct {
	TextEnabled bool `json:"textUpload"`
	FileEnabled bool `json:"fileUpload"`
}

// GetUploadToggles reads the current toggles; both default to enabled.
func GetUploadToggles(db *gorm.DB) (UploadToggles, error) {
	text, err := getSettingBool(db, settingTextUpload, true)
	if err != nil {
		return UploadToggles{}, err
	}
	file, err := getSettingBool(db, settingFileUpload, true)
	if err != nil {
		return UploadToggles{}, err
	}
	return UploadToggles{TextEnabled: text, FileEnabled: file}, nil
}

// SetUploadToggles persists both toggles.
func SetUploadToggles(db *gorm.DB, t UploadToggles) error {
	if err := setSetting(db, settingTextUpload, strconv.FormatBool(t.TextEnabled)); err != nil {
		return err
	}
	return setSetting(db, settingFileUpload, strconv.FormatBool(t.FileEnabled))
}
