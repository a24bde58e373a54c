package ai

import (
	"fmt"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Supported embedding providers
const (
	ProviderMosaic = "mosaic"
	ProviderOpenAI = "openai"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates embedding services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateEmbeddingService creates an embedding service from settings.
// Returns nil, nil when the settings are incomplete.
func (f *Factory) CreateEmbeddingService(settings *driven.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case ProviderMosaic:
		return NewMosaicEmbedding(MosaicEmbeddingConfig{
			Endpoint: settings.BaseURL,
			APIKey:   settings.APIKey,
			Model:    settings.Model,
		})
	case ProviderOpenAI:
		return NewOpenAIEmbedding(settings.APIKey, settings.Model, settings.BaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}
