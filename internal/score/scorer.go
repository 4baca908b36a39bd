package score

import (
	"fmt"

	"github.com/canoncheck/canoncheck/internal/model"
)

// Scorer aggregates claim-level judgments into the final binary prediction
type Scorer struct {
	classifier *Classifier
	cfg        model.ScoringConfig
}

// NewScorer creates a scorer with the given decision policy weights
func NewScorer(cfg model.ScoringConfig) *Scorer {
	return &Scorer{
		classifier: NewClassifier(),
		cfg:        cfg,
	}
}

// Score applies the three-rule decision policy, first match wins:
//  1. Any hard contradiction → CONTRADICTORY.
//  2. Evidence coverage below the cutoff → CONTRADICTORY (conservative).
//  3. Weighted tiebreak over the remaining counts.
func (s *Scorer) Score(deliberations []model.Deliberation) model.ScoreResult {
	classification := s.classifier.Classify(deliberations)

	if s.classifier.HasCriticalViolations(classification) {
		return model.ScoreResult{
			Label: model.LabelContradictory,
			Rationale: fmt.Sprintf(
				"CONTRADICTORY: Found %d hard contradiction(s) that cannot be reconciled with the novel.",
				classification.HardContradictions),
		}
	}

	coverage := s.classifier.Coverage(classification)
	if coverage < 1-s.cfg.InsufficientEvidenceThreshold {
		return model.ScoreResult{
			Label: model.LabelContradictory,
			Rationale: fmt.Sprintf(
				"CONTRADICTORY (conservative): Only %.0f%% of claims have sufficient evidence. Insufficient data to validate backstory.",
				coverage*100),
		}
	}

	// Hard contradictions are always 0 past rule 1; the term stays for
	// robustness if the rules are ever reordered
	weighted := float64(classification.ConsistentClaims)*s.cfg.SupportWeight -
		float64(classification.HardContradictions)*s.cfg.HardContradictionWeight -
		float64(classification.SoftContradictions)*s.cfg.SoftContradictionWeight

	if weighted >= 0 {
		return model.ScoreResult{
			Label: model.LabelConsistent,
			Rationale: fmt.Sprintf(
				"CONSISTENT: %d claims supported, %d minor conflicts (resolvable).",
				classification.ConsistentClaims, classification.SoftContradictions),
		}
	}

	return model.ScoreResult{
		Label: model.LabelContradictory,
		Rationale: fmt.Sprintf(
			"CONTRADICTORY: %d contradictions outweigh %d supporting claims.",
			classification.SoftContradictions, classification.ConsistentClaims),
	}
}
