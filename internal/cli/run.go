package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canoncheck/canoncheck/internal/dataset"
	"github.com/canoncheck/canoncheck/internal/index"
	"github.com/canoncheck/canoncheck/internal/pipeline"
)

var (
	runIndexPath string
	runOut       string
	runWorkers   int
	runLimit     int
	runStats     bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <dataset.csv>",
	Short: "Adjudicate every backstory in a dataset",
	Long: `Run loads a CSV dataset of character backstories and decides each one
against its novel's evidence index, writing one prediction per row.

The dataset needs id, book, character, and backstory columns. A label
column, when present, is used for the evaluation summary printed after
the run.

Example:
  canoncheck run data/val.csv
  canoncheck run data/val.csv --out results_val.csv --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runIndexPath, "index", "", "index file path (default: index.path from config)")
	runCmd.Flags().StringVar(&runOut, "out", "results.csv", "results CSV output path")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "concurrent samples (default: concurrency.sample_workers from config)")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "adjudicate only the first N samples (0 = all)")
	runCmd.Flags().BoolVar(&runStats, "stats", false, "print generation usage statistics after the run")
}

func runRun(cmd *cobra.Command, args []string) error {
	datasetPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runIndexPath != "" {
		cfg.Index.Path = runIndexPath
	}
	if runWorkers > 0 {
		cfg.Concurrency.SampleWorkers = runWorkers
	}

	samples, err := dataset.ReadSamples(datasetPath)
	if err != nil {
		return err
	}
	if runLimit > 0 && runLimit < len(samples) {
		samples = samples[:runLimit]
	}
	fmt.Fprintf(os.Stderr, "Loaded %d samples from %s\n", len(samples), datasetPath)

	indexer := index.NewIndexer(nil)
	found, err := indexer.Load(cfg.Index.Path)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no index at %s; run 'canoncheck index <books-dir>' first", cfg.Index.Path)
	}
	fmt.Fprintf(os.Stderr, "Loaded index with %d books from %s\n", len(indexer.Books()), cfg.Index.Path)

	adjudicator, err := pipeline.NewAdjudicator(cfg, indexer)
	if err != nil {
		return err
	}

	ctx := context.Background()
	results := adjudicator.AdjudicateBatch(ctx, samples)

	if err := dataset.WriteResults(runOut, results); err != nil {
		return err
	}
	fmt.Printf("✓ Results saved to %s\n", runOut)

	metrics := dataset.ComputeMetrics(results)
	if metrics.Labeled > 0 {
		metrics.Report(os.Stdout)
	}

	if runStats {
		adjudicator.Client().PrintStats(os.Stderr)
	}

	return nil
}
