package dataset

import (
	"fmt"
	"io"

	"github.com/canoncheck/canoncheck/internal/model"
)

// Metrics summarizes prediction quality over a labeled result set.
// CONSISTENT (1) is the positive class.
type Metrics struct {
	Labeled  int
	Accuracy float64

	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int

	Precision float64
	Recall    float64
	F1        float64

	PredictedConsistent int // Over all results, labeled or not
	Bias                float64

	BookOrder []string
	PerBook   map[string]BookMetrics
}

// BookMetrics is the per-book accuracy breakdown
type BookMetrics struct {
	Samples  int
	Correct  int
	Accuracy float64
}

// ComputeMetrics evaluates results against their true labels. Unlabeled
// results (TrueLabel -1) count toward the bias fraction but are excluded
// from accuracy, the confusion matrix, and the per-book breakdown.
func ComputeMetrics(results []model.Result) Metrics {
	m := Metrics{PerBook: make(map[string]BookMetrics)}

	correct := 0
	for _, r := range results {
		if r.Prediction == model.LabelConsistent {
			m.PredictedConsistent++
		}
		if r.TrueLabel < 0 {
			continue
		}

		m.Labeled++
		hit := r.Prediction == r.TrueLabel
		if hit {
			correct++
		}

		switch {
		case r.Prediction == 1 && r.TrueLabel == 1:
			m.TruePositives++
		case r.Prediction == 0 && r.TrueLabel == 0:
			m.TrueNegatives++
		case r.Prediction == 1 && r.TrueLabel == 0:
			m.FalsePositives++
		case r.Prediction == 0 && r.TrueLabel == 1:
			m.FalseNegatives++
		}

		book := m.PerBook[r.BookID]
		if book.Samples == 0 {
			m.BookOrder = append(m.BookOrder, r.BookID)
		}
		book.Samples++
		if hit {
			book.Correct++
		}
		m.PerBook[r.BookID] = book
	}

	if m.Labeled > 0 {
		m.Accuracy = float64(correct) / float64(m.Labeled)
	}
	if m.TruePositives+m.FalsePositives > 0 {
		m.Precision = float64(m.TruePositives) / float64(m.TruePositives+m.FalsePositives)
	}
	if m.TruePositives+m.FalseNegatives > 0 {
		m.Recall = float64(m.TruePositives) / float64(m.TruePositives+m.FalseNegatives)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	if len(results) > 0 {
		m.Bias = float64(m.PredictedConsistent) / float64(len(results))
	}

	for book, bm := range m.PerBook {
		bm.Accuracy = float64(bm.Correct) / float64(bm.Samples)
		m.PerBook[book] = bm
	}

	return m
}

// Report writes a human-readable evaluation summary
func (m Metrics) Report(w io.Writer) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "  Evaluation")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")

	if m.Labeled == 0 {
		fmt.Fprintln(w, "  No labeled samples; nothing to evaluate.")
		fmt.Fprintf(w, "  Fraction predicted consistent: %.2f%%\n", m.Bias*100)
		return
	}

	fmt.Fprintf(w, "  Accuracy: %.2f%% over %d labeled samples\n\n", m.Accuracy*100, m.Labeled)

	fmt.Fprintln(w, "  Confusion matrix:")
	fmt.Fprintf(w, "    True positives  (correct consistent):     %d\n", m.TruePositives)
	fmt.Fprintf(w, "    True negatives  (correct contradictory):  %d\n", m.TrueNegatives)
	fmt.Fprintf(w, "    False positives (wrong consistent):       %d\n", m.FalsePositives)
	fmt.Fprintf(w, "    False negatives (wrong contradictory):    %d\n\n", m.FalseNegatives)

	fmt.Fprintf(w, "  Precision: %.2f%%\n", m.Precision*100)
	fmt.Fprintf(w, "  Recall:    %.2f%%\n", m.Recall*100)
	fmt.Fprintf(w, "  F1 score:  %.2f%%\n\n", m.F1*100)

	if len(m.BookOrder) > 1 {
		fmt.Fprintln(w, "  Accuracy by book:")
		for _, book := range m.BookOrder {
			bm := m.PerBook[book]
			fmt.Fprintf(w, "    %s: %.2f%% (%d samples)\n", book, bm.Accuracy*100, bm.Samples)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  Fraction predicted consistent: %.2f%%\n", m.Bias*100)
	switch {
	case m.Bias < 0.3:
		fmt.Fprintln(w, "  Warning: strong bias toward contradictory.")
	case m.Bias > 0.7:
		fmt.Fprintln(w, "  Warning: strong bias toward consistent.")
	}
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
}
