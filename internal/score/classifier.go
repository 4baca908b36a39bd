package score

import "github.com/canoncheck/canoncheck/internal/model"

// Classifier reduces deliberations to constraint counts
type Classifier struct{}

// NewClassifier creates a classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify buckets each deliberation's final judgment. The four counts
// always sum to len(deliberations).
func (c *Classifier) Classify(deliberations []model.Deliberation) model.Classification {
	var classification model.Classification

	for _, d := range deliberations {
		switch d.Final.Verdict {
		case model.VerdictContradictory:
			if d.Final.Confidence > model.HardContradictionCutoff {
				classification.HardContradictions++
			} else {
				classification.SoftContradictions++
			}
		case model.VerdictConsistent:
			classification.ConsistentClaims++
		default:
			classification.InsufficientEvidence++
		}
	}

	return classification
}

// HasCriticalViolations reports whether any hard contradiction exists.
// Even one hard contradiction forces an inconsistent backstory.
func (c *Classifier) HasCriticalViolations(classification model.Classification) bool {
	return classification.HardContradictions > 0
}

// Coverage returns the fraction of claims with sufficient evidence,
// or 0.0 for an empty deliberation set
func (c *Classifier) Coverage(classification model.Classification) float64 {
	total := classification.Total()
	if total == 0 {
		return 0.0
	}
	return float64(total-classification.InsufficientEvidence) / float64(total)
}
