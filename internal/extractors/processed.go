package extractors

import (
	"context"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*ProcessedJSONExtractor)(nil)

// ProcessedJSONExtractor handles documents uploaded as already-processed
// JSON, the shape external extraction services produce: a flat "text"
// field, a "pages" listing, or a "content" listing.
type ProcessedJSONExtractor struct{}

// NewProcessedJSONExtractor creates a new ProcessedJSONExtractor.
func NewProcessedJSONExtractor() *ProcessedJSONExtractor {
	return &ProcessedJSONExtractor{}
}

func (e *ProcessedJSONExtractor) Extract(ctx context.Context, raw []byte, doc *domain.Document) (*domain.ProcessedContent, error) {
	content, err := domain.ParseProcessedContent(raw)
	if err != nil {
		return nil, err
	}
	content.DocumentID = doc.ID
	if content.Metadata == nil {
		content.Metadata = doc.Metadata
	}
	return content, nil
}

func (e *ProcessedJSONExtractor) Extensions() []string {
	return []string{".json"}
}

func (e *ProcessedJSONExtractor) Name() string {
	return "processed-json"
}
