package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

// MockJobStatusStore is a mock implementation of JobStatusStore for testing.
// Records are kept in creation order per document, like the real store.
type MockJobStatusStore struct {
	mu      sync.RWMutex
	byDoc   map[string][]*domain.JobStatus
	nextID  int
	setErr  error
	history []StatusWrite
}

// StatusWrite records a single SetStatus call for assertions.
type StatusWrite struct {
	DocumentID string
	Stage      string
	Status     domain.StageStatus
	Message    string
}

// NewMockJobStatusStore creates a new MockJobStatusStore
func NewMockJobStatusStore() *MockJobStatusStore {
	return &MockJobStatusStore{
		byDoc: make(map[string][]*domain.JobStatus),
	}
}

func (m *MockJobStatusStore) CreateStage(ctx context.Context, documentID, stage string) (*domain.JobStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	for _, js := range m.byDoc[documentID] {
		if js.Stage == stage {
			js.Status = domain.StatusPending
			js.Message = ""
			js.LastUpdated = now
			return js, nil
		}
	}
	m.nextID++
	js := &domain.JobStatus{
		ID:          domain.GenerateID(),
		DocumentID:  documentID,
		Stage:       stage,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		LastUpdated: now,
	}
	m.byDoc[documentID] = append(m.byDoc[documentID], js)
	return js, nil
}

func (m *MockJobStatusStore) SetStatus(ctx context.Context, documentID, stage string, status domain.StageStatus, message string) (*domain.JobStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return nil, m.setErr
	}
	for _, js := range m.byDoc[documentID] {
		if js.Stage == stage {
			js.Status = status
			js.Message = message
			js.LastUpdated = time.Now().UTC()
			m.history = append(m.history, StatusWrite{
				DocumentID: documentID,
				Stage:      stage,
				Status:     status,
				Message:    message,
			})
			return js, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockJobStatusStore) GetStatus(ctx context.Context, documentID, stage string) (*domain.JobStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, js := range m.byDoc[documentID] {
		if js.Stage == stage {
			return js, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockJobStatusStore) GetStatuses(ctx context.Context, documentID string) ([]*domain.JobStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	statuses := make([]*domain.JobStatus, len(m.byDoc[documentID]))
	copy(statuses, m.byDoc[documentID])
	return statuses, nil
}

// Helper methods for testing

func (m *MockJobStatusStore) SetStatusError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

func (m *MockJobStatusStore) Writes() []StatusWrite {
	m.mu.RLock()
	defer m.mu.RUnlock()
	writes := make([]StatusWrite, len(m.history))
	copy(writes, m.history)
	return writes
}

func (m *MockJobStatusStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byDoc = make(map[string][]*domain.JobStatus)
	m.history = nil
	m.setErr = nil
}
