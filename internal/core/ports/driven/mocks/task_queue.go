package mocks

import (
	"context"
	"sync"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// MockTaskQueue is an in-memory mock implementation of TaskQueue for testing
type MockTaskQueue struct {
	mu         sync.Mutex
	pending    []*domain.Task
	processing map[string]*domain.Task
	completed  int64
	failed     int64
	enqueueErr error
}

// NewMockTaskQueue creates a new MockTaskQueue
func NewMockTaskQueue() *MockTaskQueue {
	return &MockTaskQueue{
		processing: make(map[string]*domain.Task),
	}
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enqueueErr != nil {
		return m.enqueueErr
	}
	m.pending = append(m.pending, task)
	return nil
}

func (m *MockTaskQueue) Dequeue(ctx context.Context) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return nil, nil
	}
	task := m.pending[0]
	m.pending = m.pending[1:]
	task.MarkProcessing()
	m.processing[task.ID] = task
	return task, nil
}

func (m *MockTaskQueue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error) {
	return m.Dequeue(ctx)
}

func (m *MockTaskQueue) Ack(ctx context.Context, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.processing[taskID]
	if !ok {
		return domain.ErrNotFound
	}
	task.MarkCompleted()
	delete(m.processing, taskID)
	m.completed++
	return nil
}

func (m *MockTaskQueue) Nack(ctx context.Context, taskID string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.processing[taskID]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.processing, taskID)
	if task.CanRetry() {
		task.Retry(reason)
		m.pending = append(m.pending, task)
		return nil
	}
	task.MarkFailed(reason)
	m.failed++
	return nil
}

func (m *MockTaskQueue) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.processing[taskID]; ok {
		return task, nil
	}
	for _, task := range m.pending {
		if task.ID == taskID {
			return task, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockTaskQueue) Stats(ctx context.Context) (*driven.QueueStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &driven.QueueStats{
		PendingCount:    int64(len(m.pending)),
		ProcessingCount: int64(len(m.processing)),
		CompletedCount:  m.completed,
		FailedCount:     m.failed,
	}, nil
}

func (m *MockTaskQueue) Ping(ctx context.Context) error {
	return nil
}

func (m *MockTaskQueue) Close() error {
	return nil
}

// Helper methods for testing

func (m *MockTaskQueue) SetEnqueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enqueueErr = err
}

func (m *MockTaskQueue) Pending() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := make([]*domain.Task, len(m.pending))
	copy(tasks, m.pending)
	return tasks
}
