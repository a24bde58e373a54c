package mocks

import (
	"context"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

// MockExtractor is a mock implementation of Extractor for testing.
// It returns the raw bytes as plain text content.
type MockExtractor struct {
	name       string
	extensions []string
	err        error
}

// NewMockExtractor creates a new MockExtractor for the given extensions
func NewMockExtractor(name string, extensions ...string) *MockExtractor {
	return &MockExtractor{name: name, extensions: extensions}
}

func (m *MockExtractor) Extract(ctx context.Context, raw []byte, doc *domain.Document) (*domain.ProcessedContent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ProcessedContent{
		DocumentID: doc.ID,
		Text:       string(raw),
	}, nil
}

func (m *MockExtractor) Extensions() []string {
	return m.extensions
}

func (m *MockExtractor) Name() string {
	return m.name
}

// Helper methods for testing

func (m *MockExtractor) SetError(err error) {
	m.err = err
}
