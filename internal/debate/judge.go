package debate

import (
	"context"
	"fmt"

	"github.com/canoncheck/canoncheck/internal/llm"
	"github.com/canoncheck/canoncheck/internal/model"
)

// JudgeAgent arbitrates between the prosecutor's and defense's judgments.
// A deterministic decision table resolves the common cases without a
// generation call; only genuine disagreement goes to arbitration.
type JudgeAgent struct {
	gen Generator
}

// NewJudge creates the arbitrating agent
func NewJudge(gen Generator) *JudgeAgent {
	return &JudgeAgent{gen: gen}
}

// Deliberate produces the final judgment for one claim.
//
// Decision table, first match wins:
//  1. Both sides INSUFFICIENT → INSUFFICIENT, no generation call.
//  2. Prosecutor CONTRADICTORY above the hard cutoff → prosecutor wins
//     outright, regardless of the defense.
//  3. Both CONSISTENT → CONSISTENT at the mean confidence.
//  4. Otherwise arbitrate with one generation call.
//  5. Arbitration returning nothing → the prosecutor's judgment, unchanged
//     (conservative default).
func (j *JudgeAgent) Deliberate(ctx context.Context, claim string, prosecution, defense model.Judgment) model.Judgment {
	if prosecution.Verdict == model.VerdictInsufficient && defense.Verdict == model.VerdictInsufficient {
		return model.Judgment{
			Verdict:    model.VerdictInsufficient,
			Confidence: 0.0,
			Reasoning:  "both sides lack sufficient evidence",
		}
	}

	if prosecution.IsHardContradiction() {
		return model.Judgment{
			Verdict:    model.VerdictContradictory,
			Confidence: prosecution.Confidence,
			Reasoning:  fmt.Sprintf("Hard contradiction found: %s", prosecution.Reasoning),
		}
	}

	if prosecution.Verdict == model.VerdictConsistent && defense.Verdict == model.VerdictConsistent {
		return model.Judgment{
			Verdict:    model.VerdictConsistent,
			Confidence: (prosecution.Confidence + defense.Confidence) / 2,
			Reasoning:  "Both sides agree: consistent",
		}
	}

	response := j.gen.Generate(ctx, arbitrationPrompt(claim, prosecution, defense), llm.TaskJudge)
	if response == "" {
		return prosecution
	}

	return ParseJudgment(response)
}

func arbitrationPrompt(claim string, prosecution, defense model.Judgment) string {
	return fmt.Sprintf(`You are a JUDGE evaluating conflicting arguments about a backstory claim.

CLAIM:
%s

PROSECUTOR (finds contradictions):
Verdict: %s
Confidence: %.2f
Reasoning: %s

DEFENSE (finds consistency):
Verdict: %s
Confidence: %.2f
Reasoning: %s

YOUR TASK:
Determine which side has the stronger argument based on:
1. Strength of evidence cited
2. Logical soundness of reasoning
3. Conservative principle: contradictions override weak consistency

OUTPUT FORMAT (MUST FOLLOW EXACTLY):
VERDICT: CONSISTENT|CONTRADICTORY|INSUFFICIENT
CONFIDENCE: [0.0-1.0]
REASONING: [Explain your final judgment in 2-3 sentences]

Think step-by-step, but output ONLY the format above.`,
		claim,
		prosecution.Verdict, prosecution.Confidence, prosecution.Reasoning,
		defense.Verdict, defense.Confidence, defense.Reasoning)
}
