package debate

import (
	"context"
	"fmt"
	"strings"

	"github.com/canoncheck/canoncheck/internal/llm"
	"github.com/canoncheck/canoncheck/internal/model"
)

const (
	// maxEvidenceInPrompt bounds prompt size; chunks beyond this are ranked
	// lower and omitted
	maxEvidenceInPrompt = 3

	// maxEvidenceChunkChars truncates very long passages inside the prompt
	maxEvidenceChunkChars = 800

	// maxEvidenceUsed caps the chunk IDs recorded on a judgment
	maxEvidenceUsed = 5
)

// Generator is the text-generation capability the agents depend on.
// An empty return value is the no-output signal.
type Generator interface {
	Generate(ctx context.Context, prompt string, task llm.TaskType) string
}

// role carries one debate side's task type and prompt template
type role struct {
	task        llm.TaskType
	buildPrompt func(claim, evidence string) string
}

// Agent analyzes a claim against evidence with a role-specific bias.
// The prosecutor looks only for explicit contradictions; the defense looks
// for any plausible reconciling interpretation.
type Agent struct {
	gen  Generator
	role role
}

// NewProsecutor creates the contradiction-seeking agent
func NewProsecutor(gen Generator) *Agent {
	return &Agent{gen: gen, role: role{task: llm.TaskProsecutor, buildPrompt: prosecutorPrompt}}
}

// NewDefense creates the consistency-seeking agent
func NewDefense(gen Generator) *Agent {
	return &Agent{gen: gen, role: role{task: llm.TaskDefense, buildPrompt: defensePrompt}}
}

// Judge analyzes one claim and returns a structured judgment. With no
// evidence there is nothing to argue from, so the agent short-circuits to
// INSUFFICIENT without a generation call.
func (a *Agent) Judge(ctx context.Context, claim string, evidence []model.EvidenceChunk) model.Judgment {
	if len(evidence) == 0 {
		return model.Judgment{
			Verdict:    model.VerdictInsufficient,
			Confidence: 0.0,
			Reasoning:  "no evidence available",
		}
	}

	prompt := a.role.buildPrompt(claim, formatEvidence(evidence))
	response := a.gen.Generate(ctx, prompt, a.role.task)
	if response == "" {
		return model.Judgment{
			Verdict:    model.VerdictInsufficient,
			Confidence: 0.0,
			Reasoning:  noOutputReasoning,
		}
	}

	judgment := ParseJudgment(response)

	used := evidence
	if len(used) > maxEvidenceUsed {
		used = used[:maxEvidenceUsed]
	}
	judgment.EvidenceUsed = make([]string, len(used))
	for i, chunk := range used {
		judgment.EvidenceUsed[i] = chunk.ChunkID
	}

	return judgment
}

// formatEvidence renders ranked chunks for a prompt
func formatEvidence(evidence []model.EvidenceChunk) string {
	if len(evidence) == 0 {
		return "No relevant evidence found."
	}

	var b strings.Builder
	for i, chunk := range evidence {
		if i == maxEvidenceInPrompt {
			break
		}

		text := chunk.Text
		if len(text) > maxEvidenceChunkChars {
			text = text[:maxEvidenceChunkChars] + "..."
		}

		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[Evidence %d] (Similarity: %.2f)\n%s\n", i+1, chunk.Similarity, text)
	}

	return b.String()
}

func prosecutorPrompt(claim, evidence string) string {
	return fmt.Sprintf(`You are a PROSECUTOR analyzing whether a backstory claim CONTRADICTS a novel.

BACKSTORY CLAIM:
%s

NOVEL EVIDENCE:
%s

YOUR TASK:
1. Identify ANY direct contradictions between the claim and evidence
2. Look for:
   - Temporal impossibilities (events that couldn't happen in claimed order)
   - Logical contradictions (claim states X, novel shows NOT X)
   - Causal violations (claim's preconditions prevent novel's events)

STRICT RULES:
- A contradiction must be EXPLICIT and DIRECT
- Absence of confirmation is NOT contradiction
- Unexplained events are NOT contradictions
- Only flag HARD contradictions, not soft implausibilities

OUTPUT FORMAT (MUST FOLLOW EXACTLY):
VERDICT: CONTRADICTORY|CONSISTENT|INSUFFICIENT
CONFIDENCE: [0.0-1.0]
REASONING: [Explain your verdict in 2-3 sentences]

Think step-by-step, but output ONLY the format above.`, claim, evidence)
}

func defensePrompt(claim, evidence string) string {
	return fmt.Sprintf(`You are a DEFENSE attorney analyzing whether a backstory claim is CONSISTENT with a novel.

BACKSTORY CLAIM:
%s

NOVEL EVIDENCE:
%s

YOUR TASK:
1. Find ANY plausible interpretation where the claim fits the evidence
2. Look for:
   - Compatible causal pathways (claim explains the evidence)
   - Consistent character development (claim explains later behavior)
   - No explicit contradictions

PERMISSIVE RULES:
- If claim doesn't contradict evidence, it's CONSISTENT
- Unstated details can be assumed if plausible
- Coincidences are acceptable unless impossible
- Benefit of doubt favors CONSISTENT

OUTPUT FORMAT (MUST FOLLOW EXACTLY):
VERDICT: CONSISTENT|CONTRADICTORY|INSUFFICIENT
CONFIDENCE: [0.0-1.0]
REASONING: [Explain your verdict in 2-3 sentences]

Think step-by-step, but output ONLY the format above.`, claim, evidence)
}
