package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/canoncheck/canoncheck/internal/debate"
	"github.com/canoncheck/canoncheck/internal/llm"
	"github.com/canoncheck/canoncheck/internal/model"
	"github.com/canoncheck/canoncheck/internal/score"
)

type scriptedGenerator struct {
	responses map[llm.TaskType]string
	panicOn   llm.TaskType
}

func (s *scriptedGenerator) Generate(_ context.Context, _ string, task llm.TaskType) string {
	if task == s.panicOn {
		panic("backend exploded")
	}
	return s.responses[task]
}

type staticRetriever struct {
	chunks []model.EvidenceChunk
}

func (r *staticRetriever) RetrieveForClaims(_ context.Context, claims []string, _ string) ([][]model.EvidenceChunk, error) {
	evidence := make([][]model.EvidenceChunk, len(claims))
	for i := range claims {
		evidence[i] = r.chunks
	}
	return evidence, nil
}

func testAdjudicator(gen debate.Generator) *Adjudicator {
	cfg := model.DefaultConfig()
	retriever := &staticRetriever{chunks: []model.EvidenceChunk{
		{Text: "He grew up by the sea.", BookID: "book", ChunkID: "book_chunk_0", Similarity: 0.8},
	}}
	return &Adjudicator{
		orchestrator: debate.NewOrchestrator(gen, retriever, cfg.Agents, false),
		scorer:       score.NewScorer(cfg.Scoring),
		cfg:          cfg,
	}
}

func TestAdjudicateSample_ConsistentBackstory(t *testing.T) {
	gen := &scriptedGenerator{responses: map[llm.TaskType]string{
		llm.TaskClaimExtraction: "1. He grew up by the sea.",
		llm.TaskProsecutor:      "VERDICT: CONSISTENT\nCONFIDENCE: 0.7\nREASONING: Matches the text.",
		llm.TaskDefense:         "VERDICT: CONSISTENT\nCONFIDENCE: 0.9\nREASONING: Directly supported.",
	}}

	result := testAdjudicator(gen).AdjudicateSample(context.Background(), model.Sample{
		ID: "s1", BookID: "book", Character: "Tomas", Backstory: "He grew up by the sea.", TrueLabel: 1,
	})

	if result.Prediction != model.LabelConsistent {
		t.Errorf("prediction = %d, want 1", result.Prediction)
	}
	if result.ID != "s1" || result.TrueLabel != 1 {
		t.Errorf("result must carry the sample identity, got %+v", result)
	}
	if len(result.Deliberations) != 1 {
		t.Errorf("expected 1 deliberation, got %d", len(result.Deliberations))
	}
}

func TestAdjudicateSample_RecoversFromPanic(t *testing.T) {
	gen := &scriptedGenerator{panicOn: llm.TaskClaimExtraction}

	a := testAdjudicator(gen)
	// Deliberate itself panics before any per-claim recovery can engage
	a.orchestrator = debate.NewOrchestrator(gen, panickingRetriever{}, model.AgentsConfig{MaxClaimsPerBackstory: 10}, false)

	result := a.AdjudicateSample(context.Background(), model.Sample{
		ID: "s2", BookID: "book", Backstory: "anything", TrueLabel: -1,
	})

	if result.Prediction != model.LabelContradictory {
		t.Errorf("prediction = %d, want 0 on failure", result.Prediction)
	}
	if !strings.Contains(result.Rationale, "adjudication failed") {
		t.Errorf("rationale should carry the failure text, got %q", result.Rationale)
	}
	if result.ID != "s2" || result.TrueLabel != -1 {
		t.Errorf("failed result must keep the sample identity, got %+v", result)
	}
}

type panickingRetriever struct{}

func (panickingRetriever) RetrieveForClaims(context.Context, []string, string) ([][]model.EvidenceChunk, error) {
	panic("index corrupted")
}

func TestAdjudicateBatch_OrderAndIsolation(t *testing.T) {
	gen := &scriptedGenerator{responses: map[llm.TaskType]string{
		llm.TaskClaimExtraction: "1. He grew up by the sea.",
		llm.TaskProsecutor:      "VERDICT: CONSISTENT\nCONFIDENCE: 0.7\nREASONING: Fine.",
		llm.TaskDefense:         "VERDICT: CONSISTENT\nCONFIDENCE: 0.7\nREASONING: Fine.",
	}}

	a := testAdjudicator(gen)
	a.cfg.Concurrency.SampleWorkers = 3

	samples := []model.Sample{
		{ID: "a", BookID: "book", Backstory: "He grew up by the sea.", TrueLabel: 1},
		{ID: "b", BookID: "book", Backstory: "He grew up by the sea.", TrueLabel: 0},
		{ID: "c", BookID: "book", Backstory: "He grew up by the sea.", TrueLabel: 1},
	}

	results := a.AdjudicateBatch(context.Background(), samples)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		if results[i].ID != want {
			t.Errorf("results[%d].ID = %q, want %q", i, results[i].ID, want)
		}
	}
}
