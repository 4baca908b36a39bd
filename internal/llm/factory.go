package llm

import (
	"fmt"
	"strings"

	"github.com/canoncheck/canoncheck/internal/model"
)

// NewProvider creates a text-generation provider based on configuration
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "groq":
		return NewOpenAIProvider(cfg)

	case "ollama":
		return NewOllamaProvider(cfg)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, groq, ollama)", cfg.Provider)
	}
}
