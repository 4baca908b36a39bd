package model

import "time"

// Config is the complete process-wide configuration, built once at startup
// and passed into each component's constructor. No component reads ambient
// global state.
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Embedding   EmbeddingConfig   `yaml:"embedding" mapstructure:"embedding"`
	Index       IndexConfig       `yaml:"index" mapstructure:"index"`
	Retrieval   RetrievalConfig   `yaml:"retrieval" mapstructure:"retrieval"`
	Agents      AgentsConfig      `yaml:"agents" mapstructure:"agents"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the text-generation backend
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai", "groq", "ollama"
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`

	// Models maps a task type (claim_extraction, prosecutor, defense,
	// judge, general) to a backend model name
	Models map[string]string `yaml:"models" mapstructure:"models"`

	Temperature       float32 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	TopP              float32 `yaml:"top_p" mapstructure:"top_p"`
	MaxRetries        int     `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerMinute float64 `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	TimeoutSeconds    int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// EmbeddingConfig configures the text-to-vector backend
type EmbeddingConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai" or "ollama"
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// IndexConfig configures novel chunking and index persistence
type IndexConfig struct {
	ChunkSize    int    `yaml:"chunk_size" mapstructure:"chunk_size"`       // Words per chunk
	ChunkOverlap int    `yaml:"chunk_overlap" mapstructure:"chunk_overlap"` // Overlapping words between chunks
	MinChunkSize int    `yaml:"min_chunk_size" mapstructure:"min_chunk_size"`
	Path         string `yaml:"path" mapstructure:"path"` // Index file location
}

// RetrievalConfig configures evidence ranking
type RetrievalConfig struct {
	TopK                int     `yaml:"top_k" mapstructure:"top_k"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// AgentsConfig configures the debate agents
type AgentsConfig struct {
	MaxClaimsPerBackstory int `yaml:"max_claims_per_backstory" mapstructure:"max_claims_per_backstory"`
}

// ScoringConfig holds the final decision policy weights
type ScoringConfig struct {
	HardContradictionWeight       float64 `yaml:"hard_contradiction_weight" mapstructure:"hard_contradiction_weight"`
	SoftContradictionWeight       float64 `yaml:"soft_contradiction_weight" mapstructure:"soft_contradiction_weight"`
	SupportWeight                 float64 `yaml:"support_weight" mapstructure:"support_weight"`
	InsufficientEvidenceThreshold float64 `yaml:"insufficient_evidence_threshold" mapstructure:"insufficient_evidence_threshold"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	SampleWorkers int `yaml:"sample_workers" mapstructure:"sample_workers"`
}

// CacheConfig configures generation response caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls progress reporting
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "groq",
			BaseURL:  "",
			Models: map[string]string{
				"claim_extraction": "llama-3.3-70b-versatile",
				"prosecutor":       "llama-3.3-70b-versatile",
				"defense":          "llama-3.1-8b-instant",
				"judge":            "llama-3.3-70b-versatile",
				"general":          "llama-3.1-8b-instant",
			},
			Temperature:       0.1,
			MaxTokens:         1024,
			TopP:              0.9,
			MaxRetries:        3,
			RequestsPerMinute: 30,
			TimeoutSeconds:    90,
		},
		Embedding: EmbeddingConfig{
			Provider: "ollama",
			Model:    "nomic-embed-text",
		},
		Index: IndexConfig{
			ChunkSize:    300,
			ChunkOverlap: 50,
			MinChunkSize: 50,
			Path:         "canoncheck-index.json",
		},
		Retrieval: RetrievalConfig{
			TopK:                5,
			SimilarityThreshold: 0.3,
		},
		Agents: AgentsConfig{
			MaxClaimsPerBackstory: 10,
		},
		Scoring: ScoringConfig{
			HardContradictionWeight:       10.0,
			SoftContradictionWeight:       3.0,
			SupportWeight:                 1.0,
			InsufficientEvidenceThreshold: 0.5,
		},
		Concurrency: ConcurrencyConfig{
			SampleWorkers: 1,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
