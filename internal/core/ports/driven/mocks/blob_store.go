package mocks

import (
	"context"
	"sync"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

// MockBlobStore is an in-memory mock implementation of BlobStore for testing
type MockBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMockBlobStore creates a new MockBlobStore
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		blobs: make(map[string][]byte),
	}
}

func (m *MockBlobStore) Put(ctx context.Context, path string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(content))
	copy(buf, content)
	m.blobs[path] = buf
	return nil
}

func (m *MockBlobStore) Get(ctx context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.blobs[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return content, nil
}

func (m *MockBlobStore) Exists(ctx context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[path]
	return ok, nil
}

func (m *MockBlobStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, path)
	return nil
}

// Helper methods for testing

func (m *MockBlobStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
