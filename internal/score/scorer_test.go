package score

import (
	"strings"
	"testing"

	"github.com/canoncheck/canoncheck/internal/model"
)

func testScoringConfig() model.ScoringConfig {
	return model.ScoringConfig{
		HardContradictionWeight:       10.0,
		SoftContradictionWeight:       3.0,
		SupportWeight:                 1.0,
		InsufficientEvidenceThreshold: 0.5,
	}
}

func repeat(verdict model.Verdict, confidence float64, n int) []model.Deliberation {
	out := make([]model.Deliberation, n)
	for i := range out {
		out[i] = deliberation(verdict, confidence)
	}
	return out
}

func TestScore_HardContradictionOverridesSupport(t *testing.T) {
	// One hard contradiction against five supported claims still loses
	deliberations := append(
		repeat(model.VerdictConsistent, 0.9, 5),
		deliberation(model.VerdictContradictory, 0.95),
	)

	result := NewScorer(testScoringConfig()).Score(deliberations)

	if result.Label != model.LabelContradictory {
		t.Errorf("label = %d, want 0", result.Label)
	}
	if !strings.Contains(result.Rationale, "1 hard contradiction") {
		t.Errorf("rationale should name the hard contradiction count, got %q", result.Rationale)
	}
}

func TestScore_AllInsufficientIsConservativeContradictory(t *testing.T) {
	result := NewScorer(testScoringConfig()).Score(repeat(model.VerdictInsufficient, 0.0, 10))

	if result.Label != model.LabelContradictory {
		t.Errorf("label = %d, want 0", result.Label)
	}
	if !strings.Contains(result.Rationale, "conservative") {
		t.Errorf("rationale should flag the conservative rule, got %q", result.Rationale)
	}
}

func TestScore_CoverageAtCutoffPasses(t *testing.T) {
	// Coverage exactly at 1 - threshold is not below it
	deliberations := append(
		repeat(model.VerdictConsistent, 0.8, 2),
		repeat(model.VerdictInsufficient, 0.0, 2)...,
	)

	result := NewScorer(testScoringConfig()).Score(deliberations)

	if result.Label != model.LabelConsistent {
		t.Errorf("label = %d, want 1", result.Label)
	}
}

func TestScore_WeightedTiebreak(t *testing.T) {
	cfg := testScoringConfig()

	tests := []struct {
		name       string
		consistent int
		soft       int
		wantLabel  int
	}{
		{"support wins", 7, 2, model.LabelConsistent},
		{"soft conflicts win", 2, 3, model.LabelContradictory},
		{"exact tie is consistent", 3, 1, model.LabelConsistent}, // 3*1.0 - 1*3.0 = 0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deliberations := append(
				repeat(model.VerdictConsistent, 0.8, tt.consistent),
				repeat(model.VerdictContradictory, 0.4, tt.soft)...,
			)

			result := NewScorer(cfg).Score(deliberations)
			if result.Label != tt.wantLabel {
				t.Errorf("label = %d, want %d", result.Label, tt.wantLabel)
			}
		})
	}
}

func TestScore_EmptyDeliberations(t *testing.T) {
	// Zero claims means zero coverage: conservative contradictory
	result := NewScorer(testScoringConfig()).Score(nil)

	if result.Label != model.LabelContradictory {
		t.Errorf("label = %d, want 0", result.Label)
	}
}
