package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/canoncheck/canoncheck/internal/llm"
)

const (
	// minClaimLen filters parsing noise; shorter lines are not claims
	minClaimLen = 15

	// minSentenceLen filters fragments in the sentence-split fallback
	minSentenceLen = 20

	// hardFallbackLen caps the single claim emitted when parsing yields nothing
	hardFallbackLen = 200
)

// Generator is the text-generation capability the extractor depends on.
// An empty return value is the no-output signal.
type Generator interface {
	Generate(ctx context.Context, prompt string, task llm.TaskType) string
}

// ClaimExtractor converts a backstory narrative into a bounded list of
// atomic, checkable claims
type ClaimExtractor struct {
	gen       Generator
	maxClaims int
}

// NewClaimExtractor creates a claim extractor
func NewClaimExtractor(gen Generator, maxClaims int) *ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = 10
	}

	return &ClaimExtractor{
		gen:       gen,
		maxClaims: maxClaims,
	}
}

// Extract returns at most maxClaims claims, in narrative order. A non-empty
// backstory always yields at least one claim: generation failure falls back
// to sentence splitting, and an unparseable response falls back to a
// truncated-backstory claim.
func (e *ClaimExtractor) Extract(ctx context.Context, backstory string) []string {
	backstory = strings.TrimSpace(backstory)
	if backstory == "" {
		return nil
	}

	response := e.gen.Generate(ctx, e.buildPrompt(backstory), llm.TaskClaimExtraction)
	if response == "" {
		return e.splitSentences(backstory)
	}

	claims := parseClaimList(response)
	if len(claims) == 0 {
		head := backstory
		if len(head) > hardFallbackLen {
			head = head[:hardFallbackLen]
		}
		claims = []string{head}
	}

	if len(claims) > e.maxClaims {
		claims = claims[:e.maxClaims]
	}
	return claims
}

func (e *ClaimExtractor) buildPrompt(backstory string) string {
	return fmt.Sprintf(`Extract atomic claims from this character backstory. Each claim should be:
- A single verifiable statement
- Specific enough to check against evidence
- Free of compound statements

Avoid vague or emotional statements.

BACKSTORY:
%s

OUTPUT FORMAT:
Return ONLY a numbered list of claims, one per line:
1. [First claim]
2. [Second claim]
...

Limit to %d most important claims.`, backstory, e.maxClaims)
}

// parseClaimList scans response lines that begin with a digit, "-", or "•",
// strips the numbering, and drops noise lines
func parseClaimList(response string) []string {
	var claims []string

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		first := []rune(line)[0]
		if !(first >= '0' && first <= '9') && first != '-' && first != '•' {
			continue
		}

		claim := strings.TrimSpace(strings.TrimLeft(line, "0123456789.-•) "))
		if len(claim) < minClaimLen {
			continue
		}
		claims = append(claims, claim)
	}

	return claims
}

// splitSentences is the deterministic fallback used when generation
// returns nothing
func (e *ClaimExtractor) splitSentences(backstory string) []string {
	var claims []string

	for _, sentence := range strings.Split(backstory, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minSentenceLen {
			continue
		}
		claims = append(claims, sentence+".")
		if len(claims) == e.maxClaims {
			break
		}
	}

	if len(claims) == 0 {
		head := backstory
		if len(head) > hardFallbackLen {
			head = head[:hardFallbackLen]
		}
		claims = []string{head}
	}

	return claims
}
