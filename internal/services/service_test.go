package services

import (
	"bytes"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cloudpaste/cloudpaste/internal/database"
	"github.com/cloudpaste/cloudpaste/internal/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func newTestBlobStore(t *testing.T) storage.BlobStore {
	t.Helper()
	blobs, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return blobs
}

func newTestFileService(t *testing.T, db *gorm.DB, maxFileSize, quota int64) *FileService {
	t.Helper()
	return NewFileService(db, newTestBlobStore(t), maxFileSize, quota, zerolog.Nop())
}

// makeFileHeader builds a real multipart.FileHeader the way an HTTP request
// would deliver it.
func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	headers := form.File["files"]
	require.Len(t, headers, 1)
	return headers[0]
}
