package config

const (
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"
	ProviderGemini = "gemini"
)

// LLMConfig selects and configures the chat-completion provider. The openai
// provider talks to any OpenAI-compatible endpoint (OpenRouter by default);
// azure uses a deployment on an Azure OpenAI resource.
type LLMConfig struct {
	Provider        string
	APIKey          string
	BaseURL         string
	Model           string
	AzureEndpoint   string
	AzureDeployment string
	AzureAPIVersion string
	Temperature     float64
	MaxLogLength    int
	// ParsePolicy is strict or lenient, see resume.ParseFallbackPolicy.
	ParsePolicy string
}
