package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudpaste/cloudpaste/internal/models"
)

func TestSweepDeletesExpiredAndExhausted(t *testing.T) {
	db := newTestDB(t)
	pastes := NewPasteService(db, zerolog.Nop())
	files := newTestFileService(t, db, 1<<20, 1<<30)
	sweeper := NewSweeper(db, pastes, files, time.Hour, zerolog.Nop())

	live, err := pastes.Create(CreatePasteInput{Content: "live", ExpiresIn: "never"}, false)
	require.NoError(t, err)

	expired, err := pastes.Create(CreatePasteInput{Content: "expired", ExpiresIn: "1h"}, false)
	require.NoError(t, err)
	past := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, db.Model(&models.TextShare{}).Where("slug = ?", expired.Slug).
		Update("expires_at", past).Error)

	exhausted, err := files.Save(makeFileHeader(t, "used.txt", "data"), FileOptions{ExpiresIn: "never", MaxViews: 1}, false)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.FileShare{}).Where("slug = ?", exhausted.Slug).
		Update("view_count", 1).Error)

	deleted, err := sweeper.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	var n int64
	require.NoError(t, db.Model(&models.TextShare{}).Where("slug = ?", live.Slug).Count(&n).Error)
	assert.Equal(t, int64(1), n, "live share must survive the sweep")

	require.NoError(t, db.Model(&models.TextShare{}).Where("slug = ?", expired.Slug).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.FileShare{}).Where("slug = ?", exhausted.Slug).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSweepMarker(t *testing.T) {
	db := newTestDB(t)
	pastes := NewPasteService(db, zerolog.Nop())
	files := newTestFileService(t, db, 1<<20, 1<<30)
	sweeper := NewSweeper(db, pastes, files, time.Hour, zerolog.Nop())

	// no marker yet: due immediately
	due, err := sweeper.Due(time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, due)

	_, err = sweeper.Run()
	require.NoError(t, err)

	due, err = sweeper.Due(time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, due, "freshly swept: not due inside the interval")

	due, err = sweeper.Due(time.Now().UTC().Add(2 * time.Hour))
	require.NoError(t, err)
	assert.True(t, due)
}

func TestSweepEmptyStore(t *testing.T) {
	db := newTestDB(t)
	pastes := NewPasteService(db, zerolog.Nop())
	files := newTestFileService(t, db, 1<<20, 1<<30)
	sweeper := NewSweeper(db, pastes, files, time.Hour, zerolog.Nop())

	deleted, err := sweeper.Run()
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
