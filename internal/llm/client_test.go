package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/canoncheck/canoncheck/internal/cache"
	"github.com/canoncheck/canoncheck/internal/model"
)

// fakeProvider scripts one response per call
type fakeProvider struct {
	responses []string
	errs      []error
	calls     int
	requests  []Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) IsAvailable(context.Context) bool { return true }

func (f *fakeProvider) Generate(_ context.Context, req Request) (string, error) {
	i := f.calls
	f.calls++
	f.requests = append(f.requests, req)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var text string
	if i < len(f.responses) {
		text = f.responses[i]
	}
	return text, err
}

func testLLMConfig() model.LLMConfig {
	return model.LLMConfig{
		Provider: "fake",
		Models: map[string]string{
			"prosecutor": "big-model",
			"judge":      "judge-model",
		},
		MaxRetries:        1,
		RequestsPerMinute: 100000, // Effectively unlimited in tests
	}
}

func TestClient_ModelFallsBackToJudge(t *testing.T) {
	c := NewClient(&fakeProvider{}, testLLMConfig(), nil, 0)

	if m := c.Model(TaskProsecutor); m != "big-model" {
		t.Errorf("Model(prosecutor) = %q, want big-model", m)
	}
	if m := c.Model(TaskDefense); m != "judge-model" {
		t.Errorf("unassigned task should fall back to the judge's model, got %q", m)
	}
}

func TestClient_GenerateUsesAssignedModel(t *testing.T) {
	provider := &fakeProvider{responses: []string{"ok"}}
	c := NewClient(provider, testLLMConfig(), nil, 0)

	if got := c.Generate(context.Background(), "prompt", TaskProsecutor); got != "ok" {
		t.Fatalf("Generate = %q, want ok", got)
	}
	if provider.requests[0].Model != "big-model" {
		t.Errorf("request model = %q, want big-model", provider.requests[0].Model)
	}
}

func TestClient_EmptyStringAfterRetryExhaustion(t *testing.T) {
	provider := &fakeProvider{errs: []error{errors.New("boom")}}
	c := NewClient(provider, testLLMConfig(), nil, 0)

	if got := c.Generate(context.Background(), "prompt", TaskJudge); got != "" {
		t.Errorf("exhausted retries must yield the empty string, got %q", got)
	}
	if provider.calls != 1 {
		t.Errorf("MaxRetries 1 means exactly 1 attempt, got %d", provider.calls)
	}
}

func TestClient_CacheHitSkipsProvider(t *testing.T) {
	provider := &fakeProvider{responses: []string{"first", "second"}}
	c := NewClient(provider, testLLMConfig(), cache.NewMemoryCache(time.Minute), time.Minute)

	ctx := context.Background()
	if got := c.Generate(ctx, "prompt", TaskProsecutor); got != "first" {
		t.Fatalf("first call = %q, want first", got)
	}
	if got := c.Generate(ctx, "prompt", TaskProsecutor); got != "first" {
		t.Errorf("repeat call = %q, want the cached response", got)
	}
	if provider.calls != 1 {
		t.Errorf("cache hit must skip the provider, got %d calls", provider.calls)
	}

	// Same prompt against a different model is a distinct entry
	if got := c.Generate(ctx, "prompt", TaskJudge); got != "second" {
		t.Errorf("different model call = %q, want second", got)
	}
}

func TestClient_EmptyResponsesAreNotCached(t *testing.T) {
	provider := &fakeProvider{responses: []string{"", "later"}}
	c := NewClient(provider, testLLMConfig(), cache.NewMemoryCache(time.Minute), time.Minute)

	ctx := context.Background()
	_ = c.Generate(ctx, "prompt", TaskProsecutor)
	if got := c.Generate(ctx, "prompt", TaskProsecutor); got != "later" {
		t.Errorf("empty response must not be cached, got %q", got)
	}
}

func TestClient_Stats(t *testing.T) {
	provider := &fakeProvider{responses: []string{"a", "b", "c"}}
	c := NewClient(provider, testLLMConfig(), nil, 0)

	ctx := context.Background()
	c.Generate(ctx, "p1", TaskProsecutor)
	c.Generate(ctx, "p2", TaskProsecutor)
	c.Generate(ctx, "p3", TaskJudge)

	stats := c.Stats()
	if stats.TotalCalls != 3 {
		t.Errorf("total calls = %d, want 3", stats.TotalCalls)
	}
	if stats.CallsByModel["big-model"] != 2 || stats.CallsByModel["judge-model"] != 1 {
		t.Errorf("per-model tallies wrong: %v", stats.CallsByModel)
	}
}
