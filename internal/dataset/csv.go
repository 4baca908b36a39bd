package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/canoncheck/canoncheck/internal/model"
)

// Input column aliases. Datasets in the wild disagree on header names, so
// the first matching alias wins.
var (
	bookAliases      = []string{"book_name", "book_id", "book"}
	characterAliases = []string{"char", "character"}
	backstoryAliases = []string{"content", "backstory"}
)

// ReadSamples loads an input dataset from a headered CSV file. The label
// column is optional; samples without one get TrueLabel -1.
func ReadSamples(path string) ([]model.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	header := columnIndex(rows[0])

	idCol, ok := header["id"]
	if !ok {
		return nil, fmt.Errorf("dataset %s has no id column", path)
	}
	bookCol, ok := firstAlias(header, bookAliases)
	if !ok {
		return nil, fmt.Errorf("dataset %s has no book column (tried %s)", path, strings.Join(bookAliases, ", "))
	}
	charCol, _ := firstAlias(header, characterAliases)
	storyCol, ok := firstAlias(header, backstoryAliases)
	if !ok {
		return nil, fmt.Errorf("dataset %s has no backstory column (tried %s)", path, strings.Join(backstoryAliases, ", "))
	}
	labelCol, hasLabel := header["label"]

	samples := make([]model.Sample, 0, len(rows)-1)
	for i, row := range rows[1:] {
		sample := model.Sample{
			ID:        field(row, idCol),
			BookID:    field(row, bookCol),
			Backstory: field(row, storyCol),
			TrueLabel: -1,
		}
		if charCol >= 0 {
			sample.Character = field(row, charCol)
		}
		if hasLabel {
			sample.TrueLabel = NormalizeLabel(field(row, labelCol))
		}
		if sample.ID == "" {
			return nil, fmt.Errorf("dataset %s: row %d has no id", path, i+2)
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// NormalizeLabel converts a dataset label to the binary form: "consistent"
// and "1" map to 1, anything else to 0, and the empty string to -1
func NormalizeLabel(label string) int {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "":
		return -1
	case "consistent", "1", "true":
		return model.LabelConsistent
	default:
		return model.LabelContradictory
	}
}

// WriteResults saves adjudication results as a headered CSV file.
// Deliberation detail is deliberately dropped; the CSV is the flat record.
func WriteResults(path string, results []model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "book_name", "character", "prediction", "true_label", "rationale"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.ID,
			r.BookID,
			r.Character,
			strconv.Itoa(r.Prediction),
			strconv.Itoa(r.TrueLabel),
			r.Rationale,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write result %s: %w", r.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush results: %w", err)
	}
	return nil
}

// ReadResults loads a results CSV back for offline analysis
func ReadResults(path string) ([]model.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("results file %s is empty", path)
	}

	header := columnIndex(rows[0])
	idCol := header["id"]
	bookCol, _ := firstAlias(header, bookAliases)
	charCol, _ := firstAlias(header, characterAliases)
	predCol, ok := header["prediction"]
	if !ok {
		return nil, fmt.Errorf("results file %s has no prediction column", path)
	}
	labelCol, hasLabel := header["true_label"]
	rationaleCol, hasRationale := header["rationale"]

	results := make([]model.Result, 0, len(rows)-1)
	for i, row := range rows[1:] {
		prediction, err := strconv.Atoi(field(row, predCol))
		if err != nil {
			return nil, fmt.Errorf("results file %s: row %d: bad prediction %q", path, i+2, field(row, predCol))
		}

		result := model.Result{
			ID:         field(row, idCol),
			BookID:     field(row, bookCol),
			Prediction: prediction,
			TrueLabel:  -1,
		}
		if charCol >= 0 {
			result.Character = field(row, charCol)
		}
		if hasLabel {
			if label, err := strconv.Atoi(field(row, labelCol)); err == nil {
				result.TrueLabel = label
			}
		}
		if hasRationale {
			result.Rationale = field(row, rationaleCol)
		}
		results = append(results, result)
	}

	return results, nil
}

func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func firstAlias(header map[string]int, aliases []string) (int, bool) {
	for _, a := range aliases {
		if i, ok := header[a]; ok {
			return i, true
		}
	}
	return -1, false
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
