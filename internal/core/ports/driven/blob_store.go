package driven

import "context"

// BlobStore is the raw/processed content storage boundary. Paths are
// slash-separated keys ("raw/<id>.pdf", "processed/<id>.json").
type BlobStore interface {
	// Put writes content at path, overwriting any existing blob
	Put(ctx context.Context, path string, content []byte) error

	// Get reads the blob at path. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a blob is present at path
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes the blob at path. Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
