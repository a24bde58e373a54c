package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driving"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService embeds queries and delegates ranking to the vector store.
type searchService struct {
	embedder    driven.EmbeddingService
	vectorStore driven.VectorStore
	logger      *slog.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(
	embedder driven.EmbeddingService,
	vectorStore driven.VectorStore,
	logger *slog.Logger,
) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		embedder:    embedder,
		vectorStore: vectorStore,
		logger:      logger,
	}
}

// Search runs a query in vector or hybrid mode.
func (s *searchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]*domain.RankedMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	// Apply defaults
	if opts.TopK <= 0 {
		opts.TopK = 10
	}
	if opts.TopK > 100 {
		opts.TopK = 100
	}
	if opts.Mode == "" {
		opts.Mode = domain.SearchModeVector
	}

	if s.embedder == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured", domain.ErrServiceUnavailable)
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	switch opts.Mode {
	case domain.SearchModeVector:
		return s.vectorStore.VectorSearch(ctx, vector, opts.Filter, opts.TopK)
	case domain.SearchModeHybrid:
		return s.vectorStore.HybridSearch(ctx, query, vector, opts.Filter, opts.TopK)
	default:
		return nil, fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidInput, opts.Mode)
	}
}
