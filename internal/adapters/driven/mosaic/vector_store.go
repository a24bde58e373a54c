// Package mosaic implements the vector store boundary against MosaicDB's
// HTTP API.
package mosaic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore implements driven.VectorStore using MosaicDB
type VectorStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds MosaicDB connection configuration
type Config struct {
	// BaseURL is the MosaicDB endpoint (e.g., http://localhost:8200)
	BaseURL string

	// APIKey authenticates requests (bearer token)
	APIKey string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// NewVectorStore creates a new MosaicDB-backed VectorStore
func NewVectorStore(cfg Config) *VectorStore {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &VectorStore{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// insertRequest is the /insert request body
type insertRequest struct {
	DocumentID string         `json:"document_id"`
	Embeddings []insertRecord `json:"embeddings"`
}

type insertRecord struct {
	Chunk    string            `json:"chunk"`
	Vector   []float32         `json:"vector"`
	Metadata map[string]string `json:"metadata"`
}

// searchRequest covers /vector_search and /hybrid_search
type searchRequest struct {
	Vector []float32         `json:"vector"`
	Text   string            `json:"text,omitempty"`
	TopK   int               `json:"top_k"`
	Filter map[string]string `json:"filter"`
}

// searchResponse is the match listing both search endpoints return
type searchResponse struct {
	Matches []struct {
		ID         string            `json:"id"`
		DocumentID string            `json:"document_id"`
		Chunk      string            `json:"chunk"`
		Score      float64           `json:"score"`
		Metadata   map[string]string `json:"metadata"`
	} `json:"matches"`
}

// Insert writes all records for a document as one batch, in chunk order.
func (s *VectorStore) Insert(ctx context.Context, documentID string, records []domain.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}

	req := insertRequest{
		DocumentID: documentID,
		Embeddings: make([]insertRecord, len(records)),
	}
	for i, rec := range records {
		metadata := rec.Metadata
		if metadata == nil {
			metadata = map[string]string{}
		}
		req.Embeddings[i] = insertRecord{
			Chunk:    rec.Chunk,
			Vector:   rec.Vector,
			Metadata: metadata,
		}
	}

	return s.post(ctx, "/insert", req, nil)
}

// DeleteByDocument removes all records for a document.
func (s *VectorStore) DeleteByDocument(ctx context.Context, documentID string) error {
	return s.post(ctx, "/delete", map[string]string{"document_id": documentID}, nil)
}

// VectorSearch performs pure vector similarity search.
func (s *VectorStore) VectorSearch(ctx context.Context, vector []float32, filter map[string]string, topK int) ([]*domain.RankedMatch, error) {
	req := searchRequest{
		Vector: vector,
		TopK:   topK,
		Filter: orEmpty(filter),
	}

	var resp searchResponse
	if err := s.post(ctx, "/vector_search", req, &resp); err != nil {
		return nil, err
	}
	return toMatches(resp), nil
}

// HybridSearch combines keyword and vector ranking.
func (s *VectorStore) HybridSearch(ctx context.Context, query string, vector []float32, filter map[string]string, topK int) ([]*domain.RankedMatch, error) {
	req := searchRequest{
		Vector: vector,
		Text:   query,
		TopK:   topK,
		Filter: orEmpty(filter),
	}

	var resp searchResponse
	if err := s.post(ctx, "/hybrid_search", req, &resp); err != nil {
		return nil, err
	}
	return toMatches(resp), nil
}

// HealthCheck verifies the store is reachable.
func (s *VectorStore) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: mosaicdb returned %s", domain.ErrServiceUnavailable, resp.Status)
	}
	return nil
}

// post sends a JSON request and optionally decodes a JSON response.
func (s *VectorStore) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mosaicdb %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mosaicdb %s failed: %s - %s", path, resp.Status, bytes.TrimSpace(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrInvalidResponse, bytes.TrimSpace(respBody))
		}
	}
	return nil
}

func toMatches(resp searchResponse) []*domain.RankedMatch {
	matches := make([]*domain.RankedMatch, len(resp.Matches))
	for i, m := range resp.Matches {
		docID := m.DocumentID
		if docID == "" {
			docID = m.ID
		}
		matches[i] = &domain.RankedMatch{
			DocumentID: docID,
			Chunk:      m.Chunk,
			Score:      m.Score,
			Metadata:   m.Metadata,
		}
	}
	return matches
}

func orEmpty(filter map[string]string) map[string]string {
	if filter == nil {
		return map[string]string{}
	}
	return filter
}
