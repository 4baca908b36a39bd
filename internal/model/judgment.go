package model

// Verdict is the outcome of one agent's analysis of a claim
type Verdict string

const (
	VerdictConsistent    Verdict = "CONSISTENT"    // Claim fits the novel
	VerdictContradictory Verdict = "CONTRADICTORY" // Claim conflicts with the novel
	VerdictInsufficient  Verdict = "INSUFFICIENT"  // Not enough evidence either way
)

// IsValid reports whether v is one of the three recognized verdicts
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictConsistent, VerdictContradictory, VerdictInsufficient:
		return true
	}
	return false
}

// HardContradictionCutoff is the confidence above which a CONTRADICTORY
// verdict counts as a hard contradiction
const HardContradictionCutoff = 0.7

// Judgment is one agent's structured opinion on a single claim
type Judgment struct {
	Verdict      Verdict  `json:"verdict"`
	Confidence   float64  `json:"confidence"`              // Always clamped to [0.0, 1.0]
	Reasoning    string   `json:"reasoning"`
	EvidenceUsed []string `json:"evidence_used,omitempty"` // Chunk IDs consulted (at most 5)
}

// IsHardContradiction reports whether the judgment is a high-confidence contradiction
func (j Judgment) IsHardContradiction() bool {
	return j.Verdict == VerdictContradictory && j.Confidence > HardContradictionCutoff
}

// Deliberation is the full record of one claim's adjudication.
// Immutable after creation.
type Deliberation struct {
	Claim      string   `json:"claim"`
	Prosecutor Judgment `json:"prosecutor"`
	Defense    Judgment `json:"defense"`
	Final      Judgment `json:"final"`
}

// Classification reduces a deliberation set to verdict counts.
// The four counts always sum to the number of deliberations.
type Classification struct {
	HardContradictions   int `json:"hard_contradictions"`
	SoftContradictions   int `json:"soft_contradictions"`
	ConsistentClaims     int `json:"consistent_claims"`
	InsufficientEvidence int `json:"insufficient_evidence"`
}

// Total returns the number of classified deliberations
func (c Classification) Total() int {
	return c.HardContradictions + c.SoftContradictions + c.ConsistentClaims + c.InsufficientEvidence
}

// Final binary labels
const (
	LabelContradictory = 0
	LabelConsistent    = 1
)

// ScoreResult is the terminal output of one backstory's adjudication
type ScoreResult struct {
	Label     int    `json:"label"` // 1 = consistent, 0 = contradictory
	Rationale string `json:"rationale"`
}
