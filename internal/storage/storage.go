package storage

import (
	"io"
)

// BlobStore is the backend holding uploaded file content. Metadata lives in
// the database; blobs are addressed by the object key recorded there.
type BlobStore interface {
	// Save writes the blob under key.
	Save(key string, reader io.Reader) error

	// Open returns a reader over the blob stored under key.
	Open(key string) (io.ReadCloser, error)

	// Delete removes the blob stored under key. Deleting a missing blob is
	// not an error.
	Delete(key string) error
}
