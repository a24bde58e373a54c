package mocks

import (
	"context"
	"sync"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

// MockVectorStore is a mock implementation of VectorStore for testing
type MockVectorStore struct {
	mu          sync.RWMutex
	byDocument  map[string][]domain.EmbeddingRecord
	insertErr   error
	deleteCalls []string
	results     []*domain.RankedMatch
}

// NewMockVectorStore creates a new MockVectorStore
func NewMockVectorStore() *MockVectorStore {
	return &MockVectorStore{
		byDocument: make(map[string][]domain.EmbeddingRecord),
	}
}

func (m *MockVectorStore) Insert(ctx context.Context, documentID string, records []domain.EmbeddingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.byDocument[documentID] = append(m.byDocument[documentID], records...)
	return nil
}

func (m *MockVectorStore) DeleteByDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls = append(m.deleteCalls, documentID)
	delete(m.byDocument, documentID)
	return nil
}

func (m *MockVectorStore) VectorSearch(ctx context.Context, vector []float32, filter map[string]string, topK int) ([]*domain.RankedMatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clipped(topK), nil
}

func (m *MockVectorStore) HybridSearch(ctx context.Context, query string, vector []float32, filter map[string]string, topK int) ([]*domain.RankedMatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clipped(topK), nil
}

func (m *MockVectorStore) HealthCheck(ctx context.Context) error {
	return nil
}

func (m *MockVectorStore) clipped(topK int) []*domain.RankedMatch {
	if topK > 0 && topK < len(m.results) {
		return m.results[:topK]
	}
	return m.results
}

// Helper methods for testing

func (m *MockVectorStore) SetInsertError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertErr = err
}

func (m *MockVectorStore) SetResults(results []*domain.RankedMatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = results
}

func (m *MockVectorStore) Records(documentID string) []domain.EmbeddingRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byDocument[documentID]
}

func (m *MockVectorStore) DeleteCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]string, len(m.deleteCalls))
	copy(calls, m.deleteCalls)
	return calls
}
