package driven

import (
	"context"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

// VectorStore persists chunk embeddings and answers similarity queries.
// Ranking is entirely the store's concern; callers only supply vectors,
// query text, and metadata filters.
type VectorStore interface {
	// Insert writes all records for a document as one logical batch, in
	// chunk order. Failures surface verbatim; nothing is retried locally.
	Insert(ctx context.Context, documentID string, records []domain.EmbeddingRecord) error

	// DeleteByDocument removes all records for a document. Deleting before
	// inserting is how re-ingestion stays idempotent: the store has no
	// chunk-level dedup key.
	DeleteByDocument(ctx context.Context, documentID string) error

	// VectorSearch performs pure vector similarity search
	VectorSearch(ctx context.Context, vector []float32, filter map[string]string, topK int) ([]*domain.RankedMatch, error)

	// HybridSearch combines keyword and vector ranking
	HybridSearch(ctx context.Context, query string, vector []float32, filter map[string]string, topK int) ([]*domain.RankedMatch, error)

	// HealthCheck verifies the vector store is reachable
	HealthCheck(ctx context.Context) error
}
