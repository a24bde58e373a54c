package domain

import "time"

// Document represents an uploaded document tracked by the pipeline.
// It is created once at upload time and never deleted by the pipeline;
// only its metadata may be enriched by later stages.
type Document struct {
	ID         string            `json:"id"`
	BlobPath   string            `json:"blob_path"` // path within the blob store
	FileName   string            `json:"file_name"`
	UploadedBy string            `json:"uploaded_by,omitempty"`
	SizeBytes  int64             `json:"size_bytes"`
	Checksum   string            `json:"checksum,omitempty"` // sha256 hex
	Metadata   map[string]string `json:"metadata,omitempty"`
	UploadedAt time.Time         `json:"uploaded_at"`
}

// EmbeddingRecord is one chunk+vector tuple persisted to the vector store.
// Records for a document are written in chunk order so retrieval can
// reconstruct document order.
type EmbeddingRecord struct {
	Chunk    string            `json:"chunk"`
	Vector   []float32         `json:"vector"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RankedMatch is a single vector-store search hit.
type RankedMatch struct {
	DocumentID string            `json:"document_id"`
	Chunk      string            `json:"chunk"`
	Score      float64           `json:"score"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// SearchMode selects how the vector store ranks results.
type SearchMode string

const (
	SearchModeVector SearchMode = "vector"
	SearchModeHybrid SearchMode = "hybrid"
)

// SearchOptions controls a search request.
type SearchOptions struct {
	Mode   SearchMode        `json:"mode"`
	Filter map[string]string `json:"filter,omitempty"`
	TopK   int               `json:"top_k"`
}
