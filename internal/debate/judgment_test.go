package debate

import (
	"testing"

	"github.com/canoncheck/canoncheck/internal/model"
)

func TestParseJudgment_WellFormed(t *testing.T) {
	raw := `VERDICT: CONTRADICTORY
CONFIDENCE: 0.85
REASONING: The claim places the character in two cities at once.`

	j := ParseJudgment(raw)

	if j.Verdict != model.VerdictContradictory {
		t.Errorf("verdict = %s, want CONTRADICTORY", j.Verdict)
	}
	if j.Confidence != 0.85 {
		t.Errorf("confidence = %f, want 0.85", j.Confidence)
	}
	if j.Reasoning != "The claim places the character in two cities at once." {
		t.Errorf("unexpected reasoning: %q", j.Reasoning)
	}
}

func TestParseJudgment_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   \n  "} {
		j := ParseJudgment(raw)
		if j.Verdict != model.VerdictInsufficient {
			t.Errorf("verdict for empty input = %s, want INSUFFICIENT", j.Verdict)
		}
		if j.Confidence != 0.0 {
			t.Errorf("confidence for empty input = %f, want 0.0", j.Confidence)
		}
		if j.Reasoning != "generation returned no output" {
			t.Errorf("unexpected reasoning: %q", j.Reasoning)
		}
	}
}

func TestParseJudgment_Confidence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain decimal", "CONFIDENCE: 0.6", 0.6},
		{"percentage sign", "CONFIDENCE: 87%", 0.87},
		{"above one is a percentage", "CONFIDENCE: 1.5", 0.015},
		{"hundred percent", "CONFIDENCE: 100", 1.0},
		{"negative clamps to zero", "CONFIDENCE: -0.3", 0.0},
		{"garbage keeps default", "CONFIDENCE: very sure", 0.0},
		{"missing keeps default", "VERDICT: CONSISTENT", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := ParseJudgment(tt.raw)
			if j.Confidence != tt.want {
				t.Errorf("ParseJudgment(%q).Confidence = %f, want %f", tt.raw, j.Confidence, tt.want)
			}
		})
	}
}

func TestParseJudgment_VerdictDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want model.Verdict
	}{
		{"recognized", "VERDICT: CONSISTENT", model.VerdictConsistent},
		{"lowercase value", "verdict: contradictory", model.VerdictContradictory},
		{"unrecognized keeps default", "VERDICT: MAYBE", model.VerdictInsufficient},
		{"missing keeps default", "CONFIDENCE: 0.9", model.VerdictInsufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := ParseJudgment(tt.raw)
			if j.Verdict != tt.want {
				t.Errorf("ParseJudgment(%q).Verdict = %s, want %s", tt.raw, j.Verdict, tt.want)
			}
		})
	}
}

func TestParseJudgment_ReasoningFallsBackToFullText(t *testing.T) {
	raw := "The model rambled on without any labeled fields at all."
	j := ParseJudgment(raw)

	if j.Reasoning != raw {
		t.Errorf("expected full response retained as reasoning, got %q", j.Reasoning)
	}

	// An empty REASONING value is ignored, not taken literally
	j = ParseJudgment("VERDICT: CONSISTENT\nREASONING:   ")
	if j.Reasoning == "" {
		t.Error("empty reasoning field should keep the pre-parse default")
	}
}

func TestParseJudgment_ConfidenceAlwaysInRange(t *testing.T) {
	inputs := []string{
		"CONFIDENCE: 0.5",
		"CONFIDENCE: 250",
		"CONFIDENCE: 99%",
		"CONFIDENCE: -17",
		"CONFIDENCE: 1.0",
		"CONFIDENCE: 0",
	}

	for _, raw := range inputs {
		j := ParseJudgment(raw)
		if j.Confidence < 0.0 || j.Confidence > 1.0 {
			t.Errorf("ParseJudgment(%q).Confidence = %f, out of [0,1]", raw, j.Confidence)
		}
	}
}
