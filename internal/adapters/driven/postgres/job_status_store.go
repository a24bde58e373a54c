package postgres

import (
	"context"
	"database/sql"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.JobStatusStore = (*JobStatusStore)(nil)

// JobStatusStore implements driven.JobStatusStore using PostgreSQL.
// The UNIQUE (document_id, stage) constraint enforces the one-row-per-pair
// invariant at the database level.
type JobStatusStore struct {
	db *DB
}

// NewJobStatusStore creates a new JobStatusStore
func NewJobStatusStore(db *DB) *JobStatusStore {
	return &JobStatusStore{db: db}
}

// CreateStage records a stage as scheduled. If the (document, stage) pair
// already exists it is reset to pending with its message cleared, keeping
// its original creation time so ordering survives re-ingestion.
func (s *JobStatusStore) CreateStage(ctx context.Context, documentID, stage string) (*domain.JobStatus, error) {
	query := `
		INSERT INTO job_status (id, document_id, stage, status, message, created_at, last_updated)
		VALUES ($1, $2, $3, $4, '', NOW(), NOW())
		ON CONFLICT (document_id, stage) DO UPDATE SET
			status = EXCLUDED.status,
			message = '',
			last_updated = NOW()
		RETURNING id, document_id, stage, status, message, created_at, last_updated
	`

	return s.scanStatus(s.db.QueryRowContext(ctx, query,
		domain.GenerateID(),
		documentID,
		stage,
		string(domain.StatusPending),
	))
}

// SetStatus updates the status and message of an existing stage record.
// Returns domain.ErrNotFound if the pair was never created.
func (s *JobStatusStore) SetStatus(ctx context.Context, documentID, stage string, status domain.StageStatus, message string) (*domain.JobStatus, error) {
	query := `
		UPDATE job_status
		SET status = $3, message = $4, last_updated = NOW()
		WHERE document_id = $1 AND stage = $2
		RETURNING id, document_id, stage, status, message, created_at, last_updated
	`

	return s.scanStatus(s.db.QueryRowContext(ctx, query, documentID, stage, string(status), message))
}

// GetStatus retrieves a single stage record
func (s *JobStatusStore) GetStatus(ctx context.Context, documentID, stage string) (*domain.JobStatus, error) {
	query := `
		SELECT id, document_id, stage, status, message, created_at, last_updated
		FROM job_status
		WHERE document_id = $1 AND stage = $2
	`

	return s.scanStatus(s.db.QueryRowContext(ctx, query, documentID, stage))
}

// GetStatuses retrieves all stage records for a document in creation order
func (s *JobStatusStore) GetStatuses(ctx context.Context, documentID string) ([]*domain.JobStatus, error) {
	query := `
		SELECT id, document_id, stage, status, message, created_at, last_updated
		FROM job_status
		WHERE document_id = $1
		ORDER BY created_at, stage
	`

	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []*domain.JobStatus
	for rows.Next() {
		status, err := s.scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (s *JobStatusStore) scanStatus(row scanner) (*domain.JobStatus, error) {
	var js domain.JobStatus
	var status string

	err := row.Scan(
		&js.ID,
		&js.DocumentID,
		&js.Stage,
		&status,
		&js.Message,
		&js.CreatedAt,
		&js.LastUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	js.Status = domain.StageStatus(status)
	return &js, nil
}
