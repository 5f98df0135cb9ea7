package driven

// EmbeddingSettings configures an embedding provider.
type EmbeddingSettings struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// LLMSettings configures a generative model provider.
type LLMSettings struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// AIServiceFactory creates provider adapters from settings.
type AIServiceFactory interface {
	// CreateEmbeddingService builds an embedding adapter, nil when unset
	CreateEmbeddingService(settings *EmbeddingSettings) (EmbeddingService, error)

	// CreateLLMService builds a generative model adapter, nil when unset
	CreateLLMService(settings *LLMSettings) (LLMService, error)
}
