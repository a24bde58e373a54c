package driven

import (
	"context"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

// Extractor turns raw document bytes into processed content for chunking.
// Extraction backends with real parsing depth (PDF, DOCX, OCR) live behind
// this boundary; in-tree extractors cover text-like formats.
type Extractor interface {
	// Extract parses raw bytes into processed content
	Extract(ctx context.Context, raw []byte, doc *domain.Document) (*domain.ProcessedContent, error)

	// Extensions lists the file extensions this extractor handles
	// (lowercase, with leading dot)
	Extensions() []string

	// Name returns the extractor name for logging
	Name() string
}

// ExtractorRegistry routes documents to extractors by file extension.
type ExtractorRegistry interface {
	// Register registers an extractor for its extensions
	Register(extractor Extractor)

	// Get retrieves the extractor for an extension. Returns
	// domain.ErrUnsupportedType if none is registered.
	Get(extension string) (Extractor, error)

	// Extensions returns all registered extensions, sorted
	Extensions() []string
}
