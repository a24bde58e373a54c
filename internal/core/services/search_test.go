package services

import (
	"context"
	"errors"
	"testing"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven/mocks"
)

func TestSearchVectorMode(t *testing.T) {
	embedder := mocks.NewMockEmbeddingService()
	vectorStore := mocks.NewMockVectorStore()
	vectorStore.SetResults([]*domain.RankedMatch{
		{DocumentID: "doc-1", Chunk: "first match", Score: 0.92},
		{DocumentID: "doc-2", Chunk: "second match", Score: 0.81},
	})
	service := NewSearchService(embedder, vectorStore, nil)

	matches, err := service.Search(context.Background(), "what is docflow", domain.SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].DocumentID != "doc-1" {
		t.Errorf("expected best match first, got %s", matches[0].DocumentID)
	}
}

func TestSearchTopKClipsResults(t *testing.T) {
	embedder := mocks.NewMockEmbeddingService()
	vectorStore := mocks.NewMockVectorStore()
	vectorStore.SetResults([]*domain.RankedMatch{
		{DocumentID: "doc-1", Score: 0.9},
		{DocumentID: "doc-2", Score: 0.8},
		{DocumentID: "doc-3", Score: 0.7},
	})
	service := NewSearchService(embedder, vectorStore, nil)

	matches, err := service.Search(context.Background(), "query", domain.SearchOptions{TopK: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matches))
	}
}

func TestSearchHybridMode(t *testing.T) {
	embedder := mocks.NewMockEmbeddingService()
	vectorStore := mocks.NewMockVectorStore()
	vectorStore.SetResults([]*domain.RankedMatch{{DocumentID: "doc-1", Score: 0.5}})
	service := NewSearchService(embedder, vectorStore, nil)

	matches, err := service.Search(context.Background(), "query", domain.SearchOptions{
		Mode: domain.SearchModeHybrid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 match, got %d", len(matches))
	}
}

func TestSearchInvalidRequests(t *testing.T) {
	service := NewSearchService(mocks.NewMockEmbeddingService(), mocks.NewMockVectorStore(), nil)
	ctx := context.Background()

	_, err := service.Search(ctx, "", domain.SearchOptions{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty query, got %v", err)
	}

	_, err = service.Search(ctx, "query", domain.SearchOptions{Mode: "typo"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown mode, got %v", err)
	}
}

func TestSearchWithoutEmbedder(t *testing.T) {
	service := NewSearchService(nil, mocks.NewMockVectorStore(), nil)

	_, err := service.Search(context.Background(), "query", domain.SearchOptions{})
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestSearchEmbeddingFailure(t *testing.T) {
	embedder := mocks.NewMockEmbeddingService()
	embedder.SetFailNext(true)
	service := NewSearchService(embedder, mocks.NewMockVectorStore(), nil)

	_, err := service.Search(context.Background(), "query", domain.SearchOptions{})
	if err == nil {
		t.Fatal("expected error when query embedding fails")
	}
}
