package services

import (
	"context"
	"log/slog"

	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driving"
)

// Ensure statusService implements StatusService
var _ driving.StatusService = (*statusService)(nil)

// statusService answers pipeline progress queries.
type statusService struct {
	documentStore driven.DocumentStore
	jobStatus     driven.JobStatusStore
	logger        *slog.Logger
}

// NewStatusService creates a new StatusService.
func NewStatusService(
	documentStore driven.DocumentStore,
	jobStatus driven.JobStatusStore,
	logger *slog.Logger,
) driving.StatusService {
	if logger == nil {
		logger = slog.Default()
	}
	return &statusService{
		documentStore: documentStore,
		jobStatus:     jobStatus,
		logger:        logger,
	}
}

// Progress returns the document and its full stage history in creation
// order, including stages from prior failed attempts.
func (s *statusService) Progress(ctx context.Context, documentID string) (*driving.DocumentProgress, error) {
	doc, err := s.documentStore.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	statuses, err := s.jobStatus.GetStatuses(ctx, documentID)
	if err != nil {
		return nil, err
	}

	return &driving.DocumentProgress{
		Document: doc,
		Statuses: statuses,
	}, nil
}

// List returns a page of documents, newest upload first.
func (s *statusService) List(ctx context.Context, limit, offset int) (*driving.DocumentPage, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	docs, err := s.documentStore.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.documentStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &driving.DocumentPage{
		Documents: docs,
		Total:     total,
	}, nil
}
