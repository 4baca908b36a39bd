package llm

import "context"

// TaskType selects which backend model handles a generation request
type TaskType string

const (
	TaskClaimExtraction TaskType = "claim_extraction"
	TaskProsecutor      TaskType = "prosecutor"
	TaskDefense         TaskType = "defense"
	TaskJudge           TaskType = "judge"
	TaskGeneral         TaskType = "general"
)

// systemPrompt is sent with every generation request. The agents depend on
// the model following the VERDICT/CONFIDENCE/REASONING output format.
const systemPrompt = "You are a precise reasoning system. Follow instructions exactly and output only the requested format."

// Request is a single generation request to a backend
type Request struct {
	// Model is the backend-specific model name
	Model string

	// Prompt is the user prompt
	Prompt string

	// Sampling parameters
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// Provider defines the interface for text-generation backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces text for a single request. An error is a transport
	// or backend failure; retry policy lives in the Client, not here.
	Generate(ctx context.Context, req Request) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}
