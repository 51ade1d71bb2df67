package llm

import (
	"fmt"
	"log"
	"os"

	"github.com/rootsource-ai/rootsource/internal/config"
)

// NewProvider creates an LLM provider for the configured type and model.
// A missing API key is not an error: the pipeline must keep answering, so
// the factory degrades to the demo provider and logs the downgrade once.
func NewProvider(providerType config.ProviderType, model string) (Provider, error) {
	switch providerType {
	case config.ProviderGroq:
		apiKey := os.Getenv("GROQ_API_KEY")
		if apiKey == "" {
			log.Printf("llm: GROQ_API_KEY not set, falling back to demo provider")
			return NewDemoProvider("GROQ_API_KEY"), nil
		}
		return NewGroqProvider(apiKey, model), nil

	case config.ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			log.Printf("llm: OPENAI_API_KEY not set, falling back to demo provider")
			return NewDemoProvider("OPENAI_API_KEY"), nil
		}
		return NewOpenAIProvider(apiKey, model), nil

	case config.ProviderOllama:
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil

	case config.ProviderDemo:
		return NewDemoProvider("GROQ_API_KEY"), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
