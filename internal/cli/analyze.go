package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canoncheck/canoncheck/internal/dataset"
	"github.com/canoncheck/canoncheck/internal/model"
)

var analyzeErrors int

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <results.csv>",
	Short: "Evaluate a saved results file against its true labels",
	Long: `Analyze reloads a results CSV produced by 'canoncheck run' and prints
accuracy, the confusion matrix, precision/recall/F1, the per-book
breakdown, a prediction bias check, and a handful of misclassified
samples with their rationales.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVar(&analyzeErrors, "errors", 3, "number of misclassified samples to show")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	results, err := dataset.ReadResults(args[0])
	if err != nil {
		return err
	}

	metrics := dataset.ComputeMetrics(results)
	metrics.Report(os.Stdout)

	if analyzeErrors > 0 {
		printErrors(results, analyzeErrors)
	}

	return nil
}

func printErrors(results []model.Result, limit int) {
	shown := 0
	for _, r := range results {
		if r.TrueLabel < 0 || r.Prediction == r.TrueLabel {
			continue
		}
		if shown == 0 {
			fmt.Println("\nMisclassified samples:")
		}
		if shown >= limit {
			break
		}
		shown++

		fmt.Printf("\n  Sample: %s\n", r.ID)
		fmt.Printf("  Book: %s\n", r.BookID)
		fmt.Printf("  Character: %s\n", r.Character)
		fmt.Printf("  Predicted: %s\n", labelName(r.Prediction))
		fmt.Printf("  Actual: %s\n", labelName(r.TrueLabel))
		fmt.Printf("  Rationale: %s\n", truncate(r.Rationale, 150))
	}
}

func labelName(label int) string {
	if label == model.LabelConsistent {
		return "CONSISTENT"
	}
	return "CONTRADICTORY"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
