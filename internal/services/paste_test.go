package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudpaste/cloudpaste/internal/models"
)

func TestPasteCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasteService(db, zerolog.Nop())

	paste, err := svc.Create(CreatePasteInput{Content: "hello", ExpiresIn: "never"}, false)
	require.NoError(t, err)
	require.NotEmpty(t, paste.Slug)
	assert.Nil(t, paste.ExpiresAt)

	// unlimited shares serve repeatedly
	for i := 0; i < 5; i++ {
		got, err := svc.Get(paste.Slug, ReadAccess{})
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Content)
		assert.Nil(t, got.ExpiresAt)
		assert.Equal(t, 0, got.ViewCount)
	}
}

func TestPasteCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasteService(db, zerolog.Nop())

	_, err := svc.Create(CreatePasteInput{Content: ""}, false)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = svc.Create(CreatePasteInput{Content: "   "}, false)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = svc.Create(CreatePasteInput{Content: "x", CustomID: "bad slug!"}, false)
	assert.ErrorIs(t, err, ErrInvalidSlug)
}

func TestPasteCustomSlugConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasteService(db, zerolog.Nop())

	_, err := svc.Create(CreatePasteInput{Content: "first", CustomID: "foo"}, false)
	require.NoError(t, err)

	_, err = svc.Create(CreatePasteInput{Content: "second", CustomID: "foo"}, false)
	var conflict *SlugConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.KindPaste, conflict.Kind)
	assert.Equal(t, "foo", conflict.Slug)
}

func TestSlugConflictAcrossKinds(t *testing.T) {
	db := newTestDB(t)
	pastes := NewPasteService(db, zerolog.Nop())
	files := newTestFileService(t, db, 1<<20, 1<<30)

	_, err := pastes.Create(CreatePasteInput{Content: "text", CustomID: "shared-slug"}, false)
	require.NoError(t, err)

	// file upload claiming the paste's slug must be rejected
	_, err = files.Save(makeFileHeader(t, "a.txt", "data"), FileOptions{CustomID: "shared-slug"}, false)
	var conflict *SlugConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.KindPaste, conflict.Kind)

	// and the reverse
	_, err = files.Save(makeFileHeader(t, "b.txt", "data"), FileOptions{CustomID: "file-slug"}, false)
	require.NoError(t, err)
	_, err = pastes.Create(CreatePasteInput{Content: "text", CustomID: "file-slug"}, false)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.KindFile, conflict.Kind)
}

func TestPastePasswordGate(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasteService(db, zerolog.Nop())

	paste, err := svc.Create(CreatePasteInput{Content: "secret text", Password: "hunter2", ExpiresIn: "never"}, false)
	require.NoError(t, err)

	_, err = svc.Get(paste.Slug, ReadAccess{})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.Get(paste.Slug, ReadAccess{Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	got, err := svc.Get(paste.Slug, ReadAccess{Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "secret text", got.Content)

	// verified admin bypasses the gate entirely
	got, err = svc.Get(paste.Slug, ReadAccess{IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, "secret text", got.Content)
}

func TestPasteViewExhaustion(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasteService(db, zerolog.Nop())

	paste, err := svc.Create(CreatePasteInput{Content: "limited", ExpiresIn: "never", MaxViews: 2}, false)
	require.NoError(t, err)

	got, err := svc.Get(paste.Slug, ReadAccess{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)

	// N-th read succeeds and reports viewCount == N
	got, err = svc.Get(paste.Slug, ReadAccess{})
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewCount)

	// (N+1)-th read reports not-found and the entry is gone
	_, err = svc.Get(paste.Slug, ReadAccess{})
	assert.ErrorIs(t, err, ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&models.TextShare{}).Where("slug = ?", paste.Slug).Count(&n).Error)
	assert.Zero(t, n, "exhausted share must be deleted")

	_, err = svc.Get(paste.Slug, ReadAccess{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPasteLazyExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasteService(db, zerolog.Nop())

	paste, err := svc.Create(CreatePasteInput{Content: "soon gone", ExpiresIn: "1h"}, false)
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, db.Model(&models.TextShare{}).Where("slug = ?", paste.Slug).
		Update("expires_at", past).Error)

	// every retry reports not-found, and the entry is deleted after the first
	for i := 0; i < 3; i++ {
		_, err = svc.Get(paste.Slug, ReadAccess{})
		assert.ErrorIs(t, err, ErrNotFound)
	}
	var n int64
	require.NoError(t, db.Model(&models.TextShare{}).Where("slug = ?", paste.Slug).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPasteUpdateResetsCounter(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasteService(db, zerolog.Nop())

	paste, err := svc.Create(CreatePasteInput{Content: "v1", ExpiresIn: "never", MaxViews: 3}, false)
	require.NoError(t, err)

	// consume two views
	_, err = svc.Get(paste.Slug, ReadAccess{})
	require.NoError(t, err)
	_, err = svc.Get(paste.Slug, ReadAccess{})
	require.NoError(t, err)

	// unchanged limit keeps the counter
	updated, err := svc.Update(paste.Slug, UpdatePasteInput{Content: "v2", ExpiresIn: "never", MaxViews: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.MaxViews)
	assert.Equal(t, 2, updated.ViewCount)

	// changed limit forgives prior usage
	updated, err = svc.Update(paste.Slug, UpdatePasteInput{Content: "v3", ExpiresIn: "never", MaxViews: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.MaxViews)
	assert.Equal(t, 0, updated.ViewCount)
	assert.Equal(t, "v3", updated.Content)
}

func TestPasteUpdateRecomputesExpiryFromNow(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasteService(db, zerolog.Nop())

	paste, err := svc.Create(CreatePasteInput{Content: "x", ExpiresIn: "never"}, false)
	require.NoError(t, err)
	require.Nil(t, paste.ExpiresAt)

	before := time.Now().UTC()
	updated, err := svc.Update(paste.Slug, UpdatePasteInput{Content: "x", ExpiresIn: "1h"})
	require.NoError(t, err)
	require.NotNil(t, updated.ExpiresAt)
	assert.WithinDuration(t, before.Add(time.Hour), *updated.ExpiresAt, 5*time.Second)
}

func TestPasteUploadToggle(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasteService(db, zerolog.Nop())

	require.NoError(t, SetUploadToggles(db, UploadToggles{TextEnabled: false, FileEnabled: true}))

	_, err := svc.Create(CreatePasteInput{Content: "nope"}, false)
	assert.ErrorIs(t, err, ErrUploadDisabled)

	// admin bypasses the toggle
	_, err = svc.Create(CreatePasteInput{Content: "still works"}, true)
	assert.NoError(t, err)
}

func TestPasteSetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewPasteService(db, zerolog.Nop())

	paste, err := svc.Create(CreatePasteInput{Content: "x", ExpiresIn: "never"}, false)
	require.NoError(t, err)

	require.NoError(t, svc.SetPassword(paste.Slug, "newpass"))
	_, err = svc.Get(paste.Slug, ReadAccess{})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	// clearing the password makes the share public again
	require.NoError(t, svc.SetPassword(paste.Slug, ""))
	_, err = svc.Get(paste.Slug, ReadAccess{})
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.SetPassword("missing", "p"), ErrNotFound)
}
