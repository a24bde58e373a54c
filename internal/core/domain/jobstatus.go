package domain

import "time"

// Well-known pipeline stages. The stage set is open: per-filetype pipelines
// may add stages, so these are conventions rather than an enum.
const (
	StageIngest     = "ingest"
	StageExtraction = "extraction"
	StageChunking   = "chunking"
	StageEmbedding  = "embedding"
	StageIndexing   = "indexing"
)

// StageStatus is the closed set of states a (document, stage) pair moves through.
type StageStatus string

const (
	StatusPending           StageStatus = "pending"
	StatusProcessing        StageStatus = "processing"
	StatusCompleted         StageStatus = "completed"
	StatusIndexingCompleted StageStatus = "indexing_completed"
	StatusError             StageStatus = "error"
)

// Valid reports whether s is one of the known stage statuses.
func (s StageStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusIndexingCompleted, StatusError:
		return true
	}
	return false
}

// Terminal reports whether the status ends a stage under normal operation.
// A terminal stage is only ever reset to pending by an explicit
// re-ingestion request, never automatically.
func (s StageStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusIndexingCompleted || s == StatusError
}

// Done reports whether the stage finished successfully.
func (s StageStatus) Done() bool {
	return s == StatusCompleted || s == StatusIndexingCompleted
}

// JobStatus records a document's progress through one pipeline stage.
// At most one row exists per (document, stage) pair; status updates
// overwrite the row, they never insert.
type JobStatus struct {
	ID          string      `json:"id"`
	DocumentID  string      `json:"document_id"`
	Stage       string      `json:"stage"`
	Status      StageStatus `json:"status"`
	Message     string      `json:"message,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	LastUpdated time.Time   `json:"last_updated"`
}
