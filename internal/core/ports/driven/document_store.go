package driven

import (
	"context"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

// DocumentStore handles document persistence (PostgreSQL)
type DocumentStore interface {
	// Save creates or updates a document
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetByChecksum retrieves a document by its content checksum
	GetByChecksum(ctx context.Context, checksum string) (*domain.Document, error)

	// List retrieves documents ordered by upload time, newest first
	List(ctx context.Context, limit, offset int) ([]*domain.Document, error)

	// UpdateMetadata merges entries into a document's metadata
	UpdateMetadata(ctx context.Context, id string, metadata map[string]string) error

	// Count returns total document count
	Count(ctx context.Context) (int, error)
}

// JobStatusStore tracks per-document, per-stage pipeline progress (PostgreSQL).
// At most one record exists per (document, stage) pair.
type JobStatusStore interface {
	// CreateStage records a stage as scheduled, status pending. Creating a
	// stage that already exists resets it to pending (the explicit
	// re-ingestion path); this is the only way a terminal stage leaves its
	// terminal state.
	CreateStage(ctx context.Context, documentID, stage string) (*domain.JobStatus, error)

	// SetStatus updates the status and message of an existing stage record.
	// The status and message are written together, atomically. Returns
	// domain.ErrNotFound if the (document, stage) pair was never created;
	// it never inserts.
	SetStatus(ctx context.Context, documentID, stage string, status domain.StageStatus, message string) (*domain.JobStatus, error)

	// GetStatus retrieves a single stage record
	GetStatus(ctx context.Context, documentID, stage string) (*domain.JobStatus, error)

	// GetStatuses retrieves all stage records for a document in creation order
	GetStatuses(ctx context.Context, documentID string) ([]*domain.JobStatus, error)
}
