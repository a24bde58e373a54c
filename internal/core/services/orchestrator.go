package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/harbor-labs/docflow-core/internal/chunker"
	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Orchestrator drives a document through the pipeline stages:
// extraction, then chunking, embedding, and indexing. Each invocation is
// stateless; all durable progress lives in the job status store, so a
// re-delivered task re-runs its stages idempotently.
type Orchestrator struct {
	documentStore driven.DocumentStore
	jobStatus     driven.JobStatusStore
	blobStore     driven.BlobStore
	extractors    driven.ExtractorRegistry
	embedder      driven.EmbeddingService
	vectorStore   driven.VectorStore
	queue         driven.TaskQueue
	chunking      chunker.Config
	logger        *slog.Logger
}

// OrchestratorConfig holds dependencies for Orchestrator.
type OrchestratorConfig struct {
	DocumentStore driven.DocumentStore
	JobStatus     driven.JobStatusStore
	BlobStore     driven.BlobStore
	Extractors    driven.ExtractorRegistry
	Embedder      driven.EmbeddingService
	VectorStore   driven.VectorStore
	Queue         driven.TaskQueue
	Chunking      chunker.Config
	Logger        *slog.Logger
}

// NewOrchestrator creates a new pipeline orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	chunking := cfg.Chunking
	if chunking.MaxTokens == 0 {
		chunking = chunker.DefaultConfig()
	}

	return &Orchestrator{
		documentStore: cfg.DocumentStore,
		jobStatus:     cfg.JobStatus,
		blobStore:     cfg.BlobStore,
		extractors:    cfg.Extractors,
		embedder:      cfg.Embedder,
		vectorStore:   cfg.VectorStore,
		queue:         cfg.Queue,
		chunking:      chunking,
		logger:        logger,
	}
}

// Extract runs the extraction stage: load the raw blob, route it to an
// extractor by extension, store the processed content, and schedule the
// processing task for the remaining stages.
func (o *Orchestrator) Extract(ctx context.Context, payload domain.DocumentPayload) error {
	docID := payload.DocumentID
	o.logger.Info("starting extraction", "document_id", docID, "extension", payload.Extension)

	if err := o.setStage(ctx, docID, domain.StageExtraction, domain.StatusProcessing, ""); err != nil {
		return err
	}

	doc, err := o.documentStore.Get(ctx, docID)
	if err != nil {
		return o.failStage(ctx, docID, domain.StageExtraction, fmt.Errorf("load document: %w", err))
	}

	raw, err := o.blobStore.Get(ctx, payload.BlobPath)
	if err != nil {
		return o.failStage(ctx, docID, domain.StageExtraction, fmt.Errorf("load raw blob: %w", err))
	}

	extractor, err := o.extractors.Get(payload.Extension)
	if err != nil {
		return o.failStage(ctx, docID, domain.StageExtraction, err)
	}

	content, err := extractor.Extract(ctx, raw, doc)
	if err != nil {
		return o.failStage(ctx, docID, domain.StageExtraction, fmt.Errorf("%s extractor: %w", extractor.Name(), err))
	}

	encoded, err := json.Marshal(content)
	if err != nil {
		return o.failStage(ctx, docID, domain.StageExtraction, fmt.Errorf("encode processed content: %w", err))
	}

	contentPath := "processed/" + docID + ".json"
	if err := o.blobStore.Put(ctx, contentPath, encoded); err != nil {
		return o.failStage(ctx, docID, domain.StageExtraction, fmt.Errorf("store processed content: %w", err))
	}

	if err := o.setStage(ctx, docID, domain.StageExtraction, domain.StatusCompleted, ""); err != nil {
		return err
	}

	// Schedule the downstream stages before enqueueing, so status reads
	// show them pending as soon as the extraction stage completes.
	for _, stage := range []string{domain.StageChunking, domain.StageEmbedding, domain.StageIndexing} {
		if _, err := o.jobStatus.CreateStage(ctx, docID, stage); err != nil {
			return fmt.Errorf("schedule %s stage: %w", stage, err)
		}
	}

	task := domain.NewProcessTask(domain.DocumentPayload{
		DocumentID:  docID,
		BlobPath:    payload.BlobPath,
		Extension:   payload.Extension,
		ContentPath: contentPath,
		Metadata:    payload.Metadata,
	})
	if err := o.queue.Enqueue(ctx, task); err != nil {
		return fmt.Errorf("enqueue processing task: %w", err)
	}

	o.logger.Info("extraction completed", "document_id", docID, "content_path", contentPath)
	return nil
}

// Process runs the chunking, embedding, and indexing stages for a
// document whose content has already been extracted. Chunking is pure
// computation and the vector store write is idempotent per document, so
// re-delivery after a partial run is safe; a run whose indexing stage
// already finished is skipped entirely.
func (o *Orchestrator) Process(ctx context.Context, payload domain.DocumentPayload) error {
	docID := payload.DocumentID

	if done, err := o.stageDone(ctx, docID, domain.StageIndexing); err == nil && done {
		o.logger.Info("document already indexed, skipping", "document_id", docID)
		return nil
	}

	doc, err := o.documentStore.Get(ctx, docID)
	if err != nil {
		return o.failStage(ctx, docID, domain.StageChunking, fmt.Errorf("load document: %w", err))
	}

	// Chunking
	if err := o.setStage(ctx, docID, domain.StageChunking, domain.StatusProcessing, ""); err != nil {
		return err
	}

	chunks, err := o.chunkDocument(ctx, payload)
	if err != nil {
		return o.failStage(ctx, docID, domain.StageChunking, err)
	}

	if err := o.setStage(ctx, docID, domain.StageChunking, domain.StatusCompleted, fmt.Sprintf("%d chunks", len(chunks))); err != nil {
		return err
	}

	// Embedding
	if err := o.setStage(ctx, docID, domain.StageEmbedding, domain.StatusProcessing, ""); err != nil {
		return err
	}

	var vectors [][]float32
	if len(chunks) > 0 {
		if o.embedder == nil {
			return o.failStage(ctx, docID, domain.StageEmbedding,
				fmt.Errorf("%w: no embedding provider configured", domain.ErrServiceUnavailable))
		}
		vectors, err = o.embedder.Embed(ctx, chunks)
		if err != nil {
			return o.failStage(ctx, docID, domain.StageEmbedding, err)
		}
		if len(vectors) != len(chunks) {
			return o.failStage(ctx, docID, domain.StageEmbedding,
				fmt.Errorf("%w: %d vectors for %d chunks", domain.ErrInvalidInput, len(vectors), len(chunks)))
		}
	}

	if err := o.setStage(ctx, docID, domain.StageEmbedding, domain.StatusCompleted, ""); err != nil {
		return err
	}

	// Indexing. Deleting first keeps the write idempotent across
	// re-deliveries; the store has no chunk-level dedup key.
	if err := o.setStage(ctx, docID, domain.StageIndexing, domain.StatusProcessing, ""); err != nil {
		return err
	}

	if err := o.vectorStore.DeleteByDocument(ctx, docID); err != nil {
		return o.failStage(ctx, docID, domain.StageIndexing, fmt.Errorf("clear prior records: %w", err))
	}

	if len(chunks) > 0 {
		records := make([]domain.EmbeddingRecord, len(chunks))
		for i := range chunks {
			records[i] = domain.EmbeddingRecord{
				Chunk:    chunks[i],
				Vector:   vectors[i],
				Metadata: recordMetadata(doc),
			}
		}
		if err := o.vectorStore.Insert(ctx, docID, records); err != nil {
			return o.failStage(ctx, docID, domain.StageIndexing, err)
		}
	}

	if err := o.setStage(ctx, docID, domain.StageIndexing, domain.StatusIndexingCompleted, ""); err != nil {
		return err
	}

	if err := o.documentStore.UpdateMetadata(ctx, docID, map[string]string{
		"chunk_count": strconv.Itoa(len(chunks)),
	}); err != nil {
		o.logger.Warn("failed to record chunk count", "document_id", docID, "error", err)
	}

	o.logger.Info("document indexed", "document_id", docID, "chunks", len(chunks))
	return nil
}

// chunkDocument loads extracted content and chunks each section in order.
func (o *Orchestrator) chunkDocument(ctx context.Context, payload domain.DocumentPayload) ([]string, error) {
	encoded, err := o.blobStore.Get(ctx, payload.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("load processed content: %w", err)
	}

	content, err := domain.ParseProcessedContent(encoded)
	if err != nil {
		return nil, err
	}

	var chunks []string
	for _, section := range content.Sections() {
		sectionChunks, err := chunker.Chunk(section, o.chunking.MaxTokens, o.chunking.Overlap)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, sectionChunks...)
	}
	return chunks, nil
}

// setStage writes a stage status, surfacing store failures to the caller.
func (o *Orchestrator) setStage(ctx context.Context, docID, stage string, status domain.StageStatus, message string) error {
	if _, err := o.jobStatus.SetStatus(ctx, docID, stage, status, message); err != nil {
		return fmt.Errorf("set %s status to %s: %w", stage, status, err)
	}
	return nil
}

// failStage marks a stage as errored with the failure's description and
// halts the run. The status write is best-effort: the original failure
// is what the caller needs to see.
func (o *Orchestrator) failStage(ctx context.Context, docID, stage string, cause error) error {
	o.logger.Error("stage failed", "document_id", docID, "stage", stage, "error", cause)
	if _, err := o.jobStatus.SetStatus(ctx, docID, stage, domain.StatusError, cause.Error()); err != nil {
		o.logger.Error("failed to record stage error", "document_id", docID, "stage", stage, "error", err)
	}
	return cause
}

func (o *Orchestrator) stageDone(ctx context.Context, docID, stage string) (bool, error) {
	status, err := o.jobStatus.GetStatus(ctx, docID, stage)
	if err != nil {
		return false, err
	}
	return status.Status.Done(), nil
}

func recordMetadata(doc *domain.Document) map[string]string {
	metadata := make(map[string]string, len(doc.Metadata)+1)
	for k, v := range doc.Metadata {
		metadata[k] = v
	}
	metadata["file_name"] = doc.FileName
	return metadata
}
