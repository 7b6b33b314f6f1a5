package factory

import (
	"fmt"

	"knowledgegpt-be/pkg/llm"
	"knowledgegpt-be/pkg/llm/cohere"
	"knowledgegpt-be/pkg/llm/ollama"
)

// NewProvider builds the chat model backend named by config.
func NewProvider(providerName, modelName, apiKey, ollamaBaseURL string) (llm.Provider, error) {
	switch providerName {
	case "cohere":
		if apiKey == "" {
			return nil, fmt.Errorf("cohere provider requires an API key")
		}
		return cohere.NewProvider(apiKey, modelName), nil
	case "ollama":
		return ollama.NewProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", providerName)
	}
}
