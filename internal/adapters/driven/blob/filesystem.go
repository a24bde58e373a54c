package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.BlobStore = (*FilesystemStore)(nil)

// FilesystemStore implements BlobStore on a local directory. Blob paths map
// directly onto the filesystem below the root; path traversal outside the
// root is rejected.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates a blob store rooted at dir, creating it if needed.
func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if dir == "" {
		return nil, errors.New("blob store directory is required")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve blob root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}

	return &FilesystemStore{root: abs}, nil
}

// Put writes content at path, overwriting any existing blob
func (s *FilesystemStore) Put(ctx context.Context, path string, content []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create blob directory: %w", err)
	}

	// Write to a temp file first so readers never see a partial blob
	tmp, err := os.CreateTemp(filepath.Dir(full), ".blob-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close blob: %w", err)
	}

	if err := os.Rename(tmpName, full); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit blob: %w", err)
	}
	return nil
}

// Get reads the blob at path
func (s *FilesystemStore) Get(ctx context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return content, nil
}

// Exists reports whether a blob is present at path
func (s *FilesystemStore) Exists(ctx context.Context, path string) (bool, error) {
	full, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat blob: %w", err)
	}
	return true, nil
}

// Delete removes the blob at path. Deleting a missing blob is not an error.
func (s *FilesystemStore) Delete(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}

	err = os.Remove(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// resolve maps a blob path onto the filesystem and rejects escapes from the root.
func (s *FilesystemStore) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty blob path", domain.ErrInvalidInput)
	}

	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: blob path escapes store root: %s", domain.ErrInvalidInput, path)
	}

	return filepath.Join(s.root, clean), nil
}
