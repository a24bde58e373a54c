package driving

import (
	"context"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

// UploadRequest carries an uploaded document into the pipeline.
type UploadRequest struct {
	FileName   string
	UploadedBy string
	Content    []byte
	Metadata   map[string]string
}

// IngestService accepts documents into the pipeline.
type IngestService interface {
	// Ingest stores the upload, creates the document and its initial job
	// statuses, and schedules extraction. Returns the created document.
	Ingest(ctx context.Context, req UploadRequest) (*domain.Document, error)

	// Reingest re-schedules the extraction stage for an existing document.
	// This is the explicit, operator-triggered reset path for documents
	// stuck in error.
	Reingest(ctx context.Context, documentID string) error
}

// DocumentProgress is a document together with its full per-stage history.
type DocumentProgress struct {
	Document *domain.Document    `json:"document"`
	Statuses []*domain.JobStatus `json:"statuses"`
}

// DocumentPage is one page of the document listing.
type DocumentPage struct {
	Documents []*domain.Document `json:"documents"`
	Total     int                `json:"total"`
}

// StatusService answers progress queries for external polling/UI.
type StatusService interface {
	// Progress returns the document and every stage record ever created for
	// it, in creation order.
	Progress(ctx context.Context, documentID string) (*DocumentProgress, error)

	// List returns a page of documents, newest upload first, with the
	// total count across all pages.
	List(ctx context.Context, limit, offset int) (*DocumentPage, error)
}

// SearchService runs queries against the vector store.
type SearchService interface {
	// Search embeds the query and delegates ranking to the vector store.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]*domain.RankedMatch, error)
}
