package llm

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/canoncheck/canoncheck/internal/cache"
	"github.com/canoncheck/canoncheck/internal/model"
)

// retryBaseDelay is doubled for every failed attempt
const retryBaseDelay = time.Second

// Client wraps a Provider with per-task model selection, rate limiting,
// retries with exponential backoff, response caching, and usage tallies.
//
// Generate never returns an error: after the retry budget is exhausted the
// empty string is the no-output signal, and every downstream stage treats
// it as an empty response.
type Client struct {
	provider   Provider
	cfg        model.LLMConfig
	limiter    *rate.Limiter
	responses  cache.Cache // nil when caching is disabled
	cacheTTL   time.Duration
	totalCalls atomic.Int64

	mu      sync.Mutex
	byModel map[string]int64
}

// NewClient creates a generation client around the given provider.
// responses may be nil to disable caching.
func NewClient(provider Provider, cfg model.LLMConfig, responses cache.Cache, cacheTTL time.Duration) *Client {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}

	return &Client{
		provider:  provider,
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Limit(rpm/60.0), 1),
		responses: responses,
		cacheTTL:  cacheTTL,
		byModel:   make(map[string]int64),
	}
}

// Model returns the backend model assigned to a task type, falling back to
// the judge's model for unknown tasks
func (c *Client) Model(task TaskType) string {
	if m, ok := c.cfg.Models[string(task)]; ok && m != "" {
		return m
	}
	return c.cfg.Models[string(TaskJudge)]
}

// Generate produces text for the prompt using the model assigned to task.
// Returns "" if all retries fail.
func (c *Client) Generate(ctx context.Context, prompt string, task TaskType) string {
	modelName := c.Model(task)

	key := cache.Key(modelName, prompt)
	if c.responses != nil {
		if cached, found := c.responses.Get(key); found {
			return cached
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return ""
	}

	req := Request{
		Model:       modelName,
		Prompt:      prompt,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		TopP:        c.cfg.TopP,
	}

	maxRetries := c.cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		text, err := c.provider.Generate(ctx, req)
		if err == nil {
			c.record(modelName)
			if c.responses != nil && text != "" {
				c.responses.Set(key, text, c.cacheTTL)
			}
			return text
		}

		if attempt < maxRetries-1 {
			delay := retryBaseDelay << attempt
			fmt.Fprintf(os.Stderr, "generation attempt %d/%d failed (%s): %v; retrying in %v\n",
				attempt+1, maxRetries, task, err, delay)
			select {
			case <-ctx.Done():
				return ""
			case <-time.After(delay):
			}
		} else {
			fmt.Fprintf(os.Stderr, "generation failed after %d attempts (%s): %v\n", maxRetries, task, err)
		}
	}

	return ""
}

// record bumps the usage tallies. Safe for concurrent callers.
func (c *Client) record(modelName string) {
	c.totalCalls.Add(1)
	c.mu.Lock()
	c.byModel[modelName]++
	c.mu.Unlock()
}

// Stats is a snapshot of the client's usage tallies
type Stats struct {
	TotalCalls   int64
	CallsByModel map[string]int64
}

// Stats returns a snapshot of usage statistics
func (c *Client) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	byModel := make(map[string]int64, len(c.byModel))
	for m, n := range c.byModel {
		byModel[m] = n
	}

	return Stats{
		TotalCalls:   c.totalCalls.Load(),
		CallsByModel: byModel,
	}
}

// PrintStats writes a usage report
func (c *Client) PrintStats(w io.Writer) {
	stats := c.Stats()

	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "  %s usage statistics\n", c.provider.Name())
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "  Total calls: %d\n", stats.TotalCalls)

	models := make([]string, 0, len(stats.CallsByModel))
	for m := range stats.CallsByModel {
		models = append(models, m)
	}
	sort.Strings(models)
	for _, m := range models {
		fmt.Fprintf(w, "    %s: %d\n", m, stats.CallsByModel[m])
	}
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
}
