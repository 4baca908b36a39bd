package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/canoncheck/canoncheck/internal/cache"
	"github.com/canoncheck/canoncheck/internal/debate"
	"github.com/canoncheck/canoncheck/internal/index"
	"github.com/canoncheck/canoncheck/internal/llm"
	"github.com/canoncheck/canoncheck/internal/model"
	"github.com/canoncheck/canoncheck/internal/retrieval"
	"github.com/canoncheck/canoncheck/internal/score"
	"github.com/canoncheck/canoncheck/internal/worker"
)

// Adjudicator runs the complete per-sample process: claim extraction,
// evidence retrieval, adversarial deliberation, and final scoring.
type Adjudicator struct {
	orchestrator *debate.Orchestrator
	scorer       *score.Scorer
	client       *llm.Client
	cfg          *model.Config
}

// NewAdjudicator wires the full pipeline against an already built or
// loaded index
func NewAdjudicator(cfg *model.Config, indexer *index.Indexer) (*Adjudicator, error) {
	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm provider: %w", err)
	}

	// Local models pay their load cost on the first call; pay it up front
	if ollama, ok := provider.(*llm.OllamaProvider); ok {
		models := make([]string, 0, len(cfg.LLM.Models))
		for _, m := range cfg.LLM.Models {
			models = append(models, m)
		}
		ollama.Warmup(context.Background(), models)
	}

	var responses cache.Cache
	if cfg.Cache.Enabled {
		responses = cache.NewMemoryCache(cfg.Cache.TTL)
	}
	client := llm.NewClient(provider, cfg.LLM, responses, cfg.Cache.TTL)

	embedder, err := index.NewEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	retriever := retrieval.NewRetriever(indexer, embedder, cfg.Retrieval)
	orchestrator := debate.NewOrchestrator(client, retriever, cfg.Agents, cfg.Output.Verbose)

	return &Adjudicator{
		orchestrator: orchestrator,
		scorer:       score.NewScorer(cfg.Scoring),
		client:       client,
		cfg:          cfg,
	}, nil
}

// Client exposes the generation client for usage reporting
func (a *Adjudicator) Client() *llm.Client {
	return a.client
}

// AdjudicateSample decides one backstory. A panic anywhere in the
// per-sample process is converted into a contradictory record carrying
// the failure text, so one bad sample never takes down a batch.
func (a *Adjudicator) AdjudicateSample(ctx context.Context, sample model.Sample) (result model.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = model.Result{
				ID:         sample.ID,
				BookID:     sample.BookID,
				Character:  sample.Character,
				Prediction: model.LabelContradictory,
				TrueLabel:  sample.TrueLabel,
				Rationale:  fmt.Sprintf("adjudication failed: %v", r),
			}
		}
	}()

	deliberations := a.orchestrator.Deliberate(ctx, sample.Backstory, sample.BookID)
	scored := a.scorer.Score(deliberations)

	return model.Result{
		ID:            sample.ID,
		BookID:        sample.BookID,
		Character:     sample.Character,
		Prediction:    scored.Label,
		TrueLabel:     sample.TrueLabel,
		Rationale:     scored.Rationale,
		Deliberations: deliberations,
	}
}

// AdjudicateBatch decides every sample using the configured worker count,
// returning results in input order
func (a *Adjudicator) AdjudicateBatch(ctx context.Context, samples []model.Sample) []model.Result {
	total := len(samples)
	var done atomic.Int64

	pool := worker.NewPool(a.cfg.Concurrency.SampleWorkers, func(ctx context.Context, s model.Sample) model.Result {
		result := a.AdjudicateSample(ctx, s)
		fmt.Fprintf(os.Stderr, "[%d/%d] %s (%s): %d\n",
			done.Add(1), total, s.ID, s.Character, result.Prediction)
		return result
	})

	return pool.Run(ctx, samples)
}
