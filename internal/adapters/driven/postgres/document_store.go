package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Save creates or updates a document
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (id, blob_path, file_name, uploaded_by, size_bytes, checksum, metadata, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			blob_path = EXCLUDED.blob_path,
			file_name = EXCLUDED.file_name,
			uploaded_by = EXCLUDED.uploaded_by,
			size_bytes = EXCLUDED.size_bytes,
			checksum = EXCLUDED.checksum,
			metadata = EXCLUDED.metadata
	`

	_, err = s.db.ExecContext(ctx, query,
		doc.ID,
		doc.BlobPath,
		doc.FileName,
		doc.UploadedBy,
		doc.SizeBytes,
		doc.Checksum,
		metadataJSON,
		doc.UploadedAt,
	)
	return err
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `
		SELECT id, blob_path, file_name, uploaded_by, size_bytes, checksum, metadata, uploaded_at
		FROM documents
		WHERE id = $1
	`
	return s.scanDocument(s.db.QueryRowContext(ctx, query, id))
}

// GetByChecksum retrieves a document by its content checksum. When several
// documents share a checksum the most recent upload wins.
func (s *DocumentStore) GetByChecksum(ctx context.Context, checksum string) (*domain.Document, error) {
	query := `
		SELECT id, blob_path, file_name, uploaded_by, size_bytes, checksum, metadata, uploaded_at
		FROM documents
		WHERE checksum = $1
		ORDER BY uploaded_at DESC
		LIMIT 1
	`
	return s.scanDocument(s.db.QueryRowContext(ctx, query, checksum))
}

// List retrieves documents ordered by upload time, newest first
func (s *DocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	query := `
		SELECT id, blob_path, file_name, uploaded_by, size_bytes, checksum, metadata, uploaded_at
		FROM documents
		ORDER BY uploaded_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		doc, err := s.scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateMetadata merges entries into a document's metadata. Existing keys
// are overwritten, keys absent from the update are kept.
func (s *DocumentStore) UpdateMetadata(ctx context.Context, id string, metadata map[string]string) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE documents
		SET metadata = COALESCE(metadata, '{}'::jsonb) || $2::jsonb
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id, metadataJSON)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns total document count
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func (s *DocumentStore) scanDocument(row scanner) (*domain.Document, error) {
	var doc domain.Document
	var uploadedBy, checksum sql.NullString
	var metadataJSON []byte

	err := row.Scan(
		&doc.ID,
		&doc.BlobPath,
		&doc.FileName,
		&uploadedBy,
		&doc.SizeBytes,
		&checksum,
		&metadataJSON,
		&doc.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc.UploadedBy = uploadedBy.String
	doc.Checksum = checksum.String
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &doc.Metadata); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}
