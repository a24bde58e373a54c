package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driving"
)

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// ingestService accepts uploads: it stores the raw bytes, records the
// document, seeds its job statuses, and schedules extraction.
type ingestService struct {
	documentStore driven.DocumentStore
	jobStatus     driven.JobStatusStore
	blobStore     driven.BlobStore
	extractors    driven.ExtractorRegistry
	queue         driven.TaskQueue
	logger        *slog.Logger
}

// NewIngestService creates a new IngestService.
func NewIngestService(
	documentStore driven.DocumentStore,
	jobStatus driven.JobStatusStore,
	blobStore driven.BlobStore,
	extractors driven.ExtractorRegistry,
	queue driven.TaskQueue,
	logger *slog.Logger,
) driving.IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestService{
		documentStore: documentStore,
		jobStatus:     jobStatus,
		blobStore:     blobStore,
		extractors:    extractors,
		queue:         queue,
		logger:        logger,
	}
}

// Ingest stores an upload and schedules its extraction stage.
func (s *ingestService) Ingest(ctx context.Context, req driving.UploadRequest) (*domain.Document, error) {
	if req.FileName == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	if len(req.Content) == 0 {
		return nil, fmt.Errorf("%w: file content is empty", domain.ErrInvalidInput)
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	if _, err := s.extractors.Get(ext); err != nil {
		return nil, err
	}

	sum := sha256.Sum256(req.Content)
	checksum := hex.EncodeToString(sum[:])

	if existing, err := s.documentStore.GetByChecksum(ctx, checksum); err == nil {
		s.logger.Info("duplicate content uploaded",
			"file_name", req.FileName, "existing_document_id", existing.ID)
	}

	doc := &domain.Document{
		ID:         domain.GenerateID(),
		FileName:   req.FileName,
		UploadedBy: req.UploadedBy,
		SizeBytes:  int64(len(req.Content)),
		Checksum:   checksum,
		Metadata:   req.Metadata,
		UploadedAt: time.Now().UTC(),
	}
	doc.BlobPath = "raw/" + doc.ID + ext

	if err := s.blobStore.Put(ctx, doc.BlobPath, req.Content); err != nil {
		return nil, fmt.Errorf("store raw content: %w", err)
	}

	if err := s.documentStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	if _, err := s.jobStatus.CreateStage(ctx, doc.ID, domain.StageIngest); err != nil {
		return nil, fmt.Errorf("create ingest stage: %w", err)
	}
	if _, err := s.jobStatus.SetStatus(ctx, doc.ID, domain.StageIngest, domain.StatusCompleted, ""); err != nil {
		return nil, fmt.Errorf("complete ingest stage: %w", err)
	}

	if err := s.scheduleExtraction(ctx, doc, ext); err != nil {
		return nil, err
	}

	s.logger.Info("document ingested",
		"document_id", doc.ID, "file_name", doc.FileName, "size_bytes", doc.SizeBytes)
	return doc, nil
}

// Reingest resets the extraction stage to pending and schedules a fresh
// pipeline run for an existing document.
func (s *ingestService) Reingest(ctx context.Context, documentID string) error {
	doc, err := s.documentStore.Get(ctx, documentID)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(doc.FileName))
	if err := s.scheduleExtraction(ctx, doc, ext); err != nil {
		return err
	}

	s.logger.Info("document re-ingestion scheduled", "document_id", documentID)
	return nil
}

func (s *ingestService) scheduleExtraction(ctx context.Context, doc *domain.Document, ext string) error {
	if _, err := s.jobStatus.CreateStage(ctx, doc.ID, domain.StageExtraction); err != nil {
		return fmt.Errorf("create extraction stage: %w", err)
	}

	task := domain.NewExtractTask(domain.DocumentPayload{
		DocumentID: doc.ID,
		BlobPath:   doc.BlobPath,
		Extension:  ext,
		Metadata:   doc.Metadata,
	})
	if err := s.queue.Enqueue(ctx, task); err != nil {
		return fmt.Errorf("enqueue extraction task: %w", err)
	}
	return nil
}
