package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/canoncheck/canoncheck/internal/model"
)

func labeled(book string, prediction, trueLabel int) model.Result {
	return model.Result{BookID: book, Prediction: prediction, TrueLabel: trueLabel}
}

func TestComputeMetrics_ConfusionMatrix(t *testing.T) {
	results := []model.Result{
		labeled("a", 1, 1), // TP
		labeled("a", 1, 1), // TP
		labeled("a", 0, 0), // TN
		labeled("b", 1, 0), // FP
		labeled("b", 0, 1), // FN
	}

	m := ComputeMetrics(results)

	if m.TruePositives != 2 || m.TrueNegatives != 1 || m.FalsePositives != 1 || m.FalseNegatives != 1 {
		t.Errorf("confusion matrix tp=%d tn=%d fp=%d fn=%d, want 2/1/1/1",
			m.TruePositives, m.TrueNegatives, m.FalsePositives, m.FalseNegatives)
	}
	if m.Accuracy != 0.6 {
		t.Errorf("accuracy = %f, want 0.6", m.Accuracy)
	}
	if math.Abs(m.Precision-2.0/3.0) > 1e-9 {
		t.Errorf("precision = %f, want 2/3", m.Precision)
	}
	if math.Abs(m.Recall-2.0/3.0) > 1e-9 {
		t.Errorf("recall = %f, want 2/3", m.Recall)
	}
	if math.Abs(m.F1-2.0/3.0) > 1e-9 {
		t.Errorf("f1 = %f, want 2/3", m.F1)
	}
}

func TestComputeMetrics_UnlabeledOnlyCountTowardBias(t *testing.T) {
	results := []model.Result{
		labeled("a", 1, 1),
		{BookID: "a", Prediction: 1, TrueLabel: -1},
		{BookID: "a", Prediction: 0, TrueLabel: -1},
		{BookID: "a", Prediction: 0, TrueLabel: -1},
	}

	m := ComputeMetrics(results)

	if m.Labeled != 1 {
		t.Errorf("labeled = %d, want 1", m.Labeled)
	}
	if m.Accuracy != 1.0 {
		t.Errorf("accuracy = %f, want 1.0", m.Accuracy)
	}
	if m.Bias != 0.5 {
		t.Errorf("bias = %f, want 0.5 over all 4 results", m.Bias)
	}
}

func TestComputeMetrics_PerBookKeepsFirstSeenOrder(t *testing.T) {
	results := []model.Result{
		labeled("dracula", 1, 1),
		labeled("frankenstein", 0, 1),
		labeled("dracula", 0, 0),
	}

	m := ComputeMetrics(results)

	if len(m.BookOrder) != 2 || m.BookOrder[0] != "dracula" || m.BookOrder[1] != "frankenstein" {
		t.Errorf("book order = %v, want [dracula frankenstein]", m.BookOrder)
	}
	if m.PerBook["dracula"].Accuracy != 1.0 {
		t.Errorf("dracula accuracy = %f, want 1.0", m.PerBook["dracula"].Accuracy)
	}
	if m.PerBook["frankenstein"].Accuracy != 0.0 {
		t.Errorf("frankenstein accuracy = %f, want 0.0", m.PerBook["frankenstein"].Accuracy)
	}
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics(nil)
	if m.Accuracy != 0 || m.Precision != 0 || m.Recall != 0 || m.F1 != 0 || m.Bias != 0 {
		t.Errorf("empty input should zero every metric, got %+v", m)
	}
}

func TestReport_WarnsOnBias(t *testing.T) {
	results := []model.Result{
		labeled("a", 0, 0),
		labeled("a", 0, 1),
		labeled("a", 0, 0),
		labeled("a", 0, 1),
	}

	var buf strings.Builder
	ComputeMetrics(results).Report(&buf)

	if !strings.Contains(buf.String(), "bias toward contradictory") {
		t.Errorf("report should warn on all-contradictory predictions, got:\n%s", buf.String())
	}
}
