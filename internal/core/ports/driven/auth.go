package driven

// AuthAdapter handles API token issuance and verification.
type AuthAdapter interface {
	// VerifyKey checks a plaintext API key against the configured hash
	VerifyKey(key string) bool

	// GenerateToken issues a signed token for an authenticated client
	GenerateToken(subject string) (string, error)

	// ValidateToken verifies a token and returns its subject.
	// Returns domain.ErrUnauthorized for invalid or expired tokens.
	ValidateToken(token string) (string, error)
}

// AIServiceFactory creates embedding services from provider settings.
type AIServiceFactory interface {
	CreateEmbeddingService(settings *EmbeddingSettings) (EmbeddingService, error)
}

// EmbeddingSettings selects and configures an embedding provider.
type EmbeddingSettings struct {
	// Provider is "mosaic" or "openai"
	Provider string

	// APIKey authenticates against the provider
	APIKey string

	// Model is the embedding model name
	Model string

	// BaseURL is the endpoint root (required for mosaic, optional for openai)
	BaseURL string
}

// IsConfigured reports whether the settings can produce a service.
func (s *EmbeddingSettings) IsConfigured() bool {
	if s == nil || s.Provider == "" {
		return false
	}
	if s.Provider == "openai" {
		return s.APIKey != ""
	}
	return s.BaseURL != ""
}
