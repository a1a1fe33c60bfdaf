package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps blobs as files under a single data directory.
type LocalStore struct {
	dataDir string
}

// NewLocalStore creates a filesystem-backed blob store rooted at dataDir.
func NewLocalStore(dataDir string) (*LocalStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &LocalStore{dataDir: dataDir}, nil
}

func (l *LocalStore) path(key string) string {
	// keys are generated server-side, but never trust them as paths
	return filepath.Join(l.dataDir, filepath.Base(key))
}

// Save writes the blob to disk, removing the partial file on failure.
func (l *LocalStore) Save(key string, reader io.Reader) error {
	path := l.path(key)

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// Open returns a reader over the stored blob.
func (l *LocalStore) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(l.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes the stored blob. A missing blob is not an error.
func (l *LocalStore) Delete(key string) error {
	if err := os.Remove(l.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
