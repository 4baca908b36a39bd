package debate

import (
	"context"
	"fmt"
	"os"

	"github.com/canoncheck/canoncheck/internal/extract"
	"github.com/canoncheck/canoncheck/internal/model"
)

// Retriever supplies evidence for claims, one evidence set per claim position
type Retriever interface {
	RetrieveForClaims(ctx context.Context, claims []string, bookID string) ([][]model.EvidenceChunk, error)
}

// Orchestrator composes claim extraction, evidence retrieval, and the three
// debate agents into one end-to-end deliberation over a backstory
type Orchestrator struct {
	extractor  *extract.ClaimExtractor
	retriever  Retriever
	prosecutor *Agent
	defense    *Agent
	judge      *JudgeAgent
	verbose    bool
}

// NewOrchestrator wires the debate pipeline
func NewOrchestrator(gen Generator, retriever Retriever, cfg model.AgentsConfig, verbose bool) *Orchestrator {
	return &Orchestrator{
		extractor:  extract.NewClaimExtractor(gen, cfg.MaxClaimsPerBackstory),
		retriever:  retriever,
		prosecutor: NewProsecutor(gen),
		defense:    NewDefense(gen),
		judge:      NewJudge(gen),
		verbose:    verbose,
	}
}

// Deliberate runs the full debate over a backstory, one deliberation per
// extracted claim, in extraction order. A failure in one claim's
// deliberation never aborts its siblings.
func (o *Orchestrator) Deliberate(ctx context.Context, backstory, bookID string) []model.Deliberation {
	claims := o.extractor.Extract(ctx, backstory)
	o.progress("  → %d claims identified\n", len(claims))

	evidence, err := o.retriever.RetrieveForClaims(ctx, claims, bookID)
	if err != nil {
		// Claims without evidence short-circuit to INSUFFICIENT downstream
		fmt.Fprintf(os.Stderr, "evidence retrieval failed for %s: %v\n", bookID, err)
		evidence = make([][]model.EvidenceChunk, len(claims))
	}

	deliberations := make([]model.Deliberation, 0, len(claims))
	for i, claim := range claims {
		o.progress("  → claim %d/%d: %s\n", i+1, len(claims), truncate(claim, 80))
		d := o.deliberateClaim(ctx, claim, evidence[i])
		o.progress("    verdict: %s (confidence %.2f)\n", d.Final.Verdict, d.Final.Confidence)
		deliberations = append(deliberations, d)
	}

	return deliberations
}

// deliberateClaim runs prosecutor, defense, and judge on one claim,
// converting a panic into a defaulted deliberation for that claim alone
func (o *Orchestrator) deliberateClaim(ctx context.Context, claim string, evidence []model.EvidenceChunk) (d model.Deliberation) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "deliberation failed for claim %q: %v\n", truncate(claim, 80), r)
			fallback := model.Judgment{
				Verdict:    model.VerdictInsufficient,
				Confidence: 0.0,
				Reasoning:  fmt.Sprintf("deliberation failed: %v", r),
			}
			d = model.Deliberation{Claim: claim, Prosecutor: fallback, Defense: fallback, Final: fallback}
		}
	}()

	prosecution := o.prosecutor.Judge(ctx, claim, evidence)
	defense := o.defense.Judge(ctx, claim, evidence)
	final := o.judge.Deliberate(ctx, claim, prosecution, defense)

	return model.Deliberation{
		Claim:      claim,
		Prosecutor: prosecution,
		Defense:    defense,
		Final:      final,
	}
}

func (o *Orchestrator) progress(format string, args ...any) {
	if o.verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
