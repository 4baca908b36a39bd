package debate

import (
	"strconv"
	"strings"

	"github.com/canoncheck/canoncheck/internal/model"
)

// noOutputReasoning marks judgments produced from an empty generation response
const noOutputReasoning = "generation returned no output"

// ParseJudgment turns free-form generated text into a structured judgment.
// It is a best-effort grammar over unreliable model output: every field has
// a safe default and malformed input never fails.
//
// Expected format:
//
//	VERDICT: CONSISTENT|CONTRADICTORY|INSUFFICIENT
//	CONFIDENCE: 0.0-1.0
//	REASONING: ...
func ParseJudgment(raw string) model.Judgment {
	if strings.TrimSpace(raw) == "" {
		return model.Judgment{
			Verdict:    model.VerdictInsufficient,
			Confidence: 0.0,
			Reasoning:  noOutputReasoning,
		}
	}

	// Pre-parse defaults: unparseable responses keep the full text as reasoning
	judgment := model.Judgment{
		Verdict:    model.VerdictInsufficient,
		Confidence: 0.0,
		Reasoning:  raw,
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(upper, "VERDICT:"):
			verdict := model.Verdict(strings.ToUpper(strings.TrimSpace(afterColon(line))))
			if verdict.IsValid() {
				judgment.Verdict = verdict
			}

		case strings.HasPrefix(upper, "CONFIDENCE:"):
			value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(afterColon(line)), "%"))
			confidence, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue // keep the default
			}
			if confidence > 1.0 {
				// Values above 1.0 are assumed to be percentages
				confidence /= 100.0
			}
			judgment.Confidence = clamp(confidence, 0.0, 1.0)

		case strings.HasPrefix(upper, "REASONING:"):
			if reasoning := strings.TrimSpace(afterColon(line)); reasoning != "" {
				judgment.Reasoning = reasoning
			}
		}
	}

	return judgment
}

func afterColon(line string) string {
	if _, rest, ok := strings.Cut(line, ":"); ok {
		return rest
	}
	return ""
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
