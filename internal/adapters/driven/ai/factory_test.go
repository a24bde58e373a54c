package ai

import (
	"errors"
	"testing"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

func TestFactoryCreatesMosaicService(t *testing.T) {
	f := NewFactory()

	svc, err := f.CreateEmbeddingService(&driven.EmbeddingSettings{
		Provider: ProviderMosaic,
		BaseURL:  "http://localhost:9000/embed",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc == nil {
		t.Fatal("expected service")
	}
	if _, ok := svc.(*MosaicEmbedding); !ok {
		t.Errorf("expected MosaicEmbedding, got %T", svc)
	}
}

func TestFactoryCreatesOpenAIService(t *testing.T) {
	f := NewFactory()

	svc, err := f.CreateEmbeddingService(&driven.EmbeddingSettings{
		Provider: ProviderOpenAI,
		APIKey:   "sk-test",
		Model:    "text-embedding-3-small",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.(*OpenAIEmbedding); !ok {
		t.Errorf("expected OpenAIEmbedding, got %T", svc)
	}
}

func TestFactoryUnconfiguredSettings(t *testing.T) {
	f := NewFactory()

	tests := []struct {
		name     string
		settings *driven.EmbeddingSettings
	}{
		{"nil settings", nil},
		{"empty provider", &driven.EmbeddingSettings{}},
		{"openai without key", &driven.EmbeddingSettings{Provider: ProviderOpenAI}},
		{"mosaic without endpoint", &driven.EmbeddingSettings{Provider: ProviderMosaic}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := f.CreateEmbeddingService(tt.settings)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if svc != nil {
				t.Errorf("expected nil service, got %T", svc)
			}
		})
	}
}

func TestFactoryUnknownProvider(t *testing.T) {
	f := NewFactory()

	_, err := f.CreateEmbeddingService(&driven.EmbeddingSettings{
		Provider: "acme",
		BaseURL:  "http://localhost:9000",
	})
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}
