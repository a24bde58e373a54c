package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Ensure MosaicEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*MosaicEmbedding)(nil)

// MosaicEmbedding implements EmbeddingService against a Mosaic model
// serving endpoint. The endpoint takes one text per request, so Embed
// makes one round trip per chunk; any failure mid-batch discards the
// vectors computed so far.
type MosaicEmbedding struct {
	endpoint   string
	apiKey     string
	model      string
	dimensions int
	client     *http.Client
}

// MosaicEmbeddingConfig configures the Mosaic embedding client.
type MosaicEmbeddingConfig struct {
	// Endpoint is the model serving URL
	Endpoint string

	// APIKey authenticates requests (bearer token)
	APIKey string

	// Model is reported for logging; the endpoint itself is model-bound
	Model string

	// Dimensions of the served model's vectors
	Dimensions int

	// Timeout for a single embedding request
	Timeout time.Duration
}

// NewMosaicEmbedding creates a new Mosaic embedding client.
func NewMosaicEmbedding(cfg MosaicEmbeddingConfig) (*MosaicEmbedding, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("mosaic endpoint is required")
	}
	if cfg.Model == "" {
		cfg.Model = "mosaic-embedding"
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = 768
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &MosaicEmbedding{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// embedRequest is the serving endpoint's request body
type embedRequest struct {
	Text string `json:"text"`
}

// Embed generates one embedding per text, order-preserving.
func (e *MosaicEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vector, err := e.embedOne(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("chunk %d of %d: %w", i+1, len(texts), err)
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

// EmbedQuery generates an embedding for a search query.
func (e *MosaicEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return e.embedOne(ctx, query)
}

// Dimensions returns the embedding dimension size.
func (e *MosaicEmbedding) Dimensions() int {
	return e.dimensions
}

// Model returns the model name being used.
func (e *MosaicEmbedding) Model() string {
	return e.model
}

// HealthCheck verifies the serving endpoint is reachable.
func (e *MosaicEmbedding) HealthCheck(ctx context.Context) error {
	_, err := e.embedOne(ctx, "health check")
	return err
}

// Close releases resources held by the client.
func (e *MosaicEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

// embedOne makes a single embedding request. A response without an
// "embedding" field is a hard ErrInvalidResponse with the raw body
// echoed, so the failure shows up verbatim in stage messages.
func (e *MosaicEmbedding) embedOne(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: mosaic endpoint returned status %d: %s",
			domain.ErrServiceUnavailable, resp.StatusCode, bytes.TrimSpace(respBody))
	}

	var parsed struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidResponse, bytes.TrimSpace(respBody))
	}
	if parsed.Embedding == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidResponse, bytes.TrimSpace(respBody))
	}

	return parsed.Embedding, nil
}
