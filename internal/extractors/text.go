package extractors

import (
	"context"
	"strings"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*TextExtractor)(nil)

// TextExtractor handles plain-text-like formats. The raw bytes are the
// content; extraction is limited to line-ending normalization.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (e *TextExtractor) Extract(ctx context.Context, raw []byte, doc *domain.Document) (*domain.ProcessedContent, error) {
	text := string(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)

	return &domain.ProcessedContent{
		DocumentID: doc.ID,
		Metadata:   doc.Metadata,
		Text:       text,
	}, nil
}

func (e *TextExtractor) Extensions() []string {
	return []string{".txt", ".md", ".markdown", ".csv", ".log"}
}

func (e *TextExtractor) Name() string {
	return "text"
}
