package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/canoncheck/canoncheck/internal/index"
)

var (
	indexOut     string
	indexTimeout time.Duration
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index <books-dir>",
	Short: "Build the evidence index from a directory of novels",
	Long: `Index reads every .txt file in the directory, splits each novel into
overlapping word-window chunks, embeds the chunks, and saves the result
as a JSON index file. The file name (without extension) becomes the book
ID that dataset rows must reference.

Example:
  canoncheck index data/Books/
  canoncheck index data/Books/ --out canoncheck-index.json`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVar(&indexOut, "out", "", "index output path (default: index.path from config)")
	indexCmd.Flags().DurationVar(&indexTimeout, "timeout", 30*time.Minute, "overall indexing timeout")
}

func runIndex(cmd *cobra.Command, args []string) error {
	booksDir := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if indexOut != "" {
		cfg.Index.Path = indexOut
	}

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	ingestor := index.NewIngestor(cfg.Index)
	books, err := ingestor.IngestDir(booksDir)
	if err != nil {
		return fmt.Errorf("ingest books: %w", err)
	}

	totalChunks := 0
	ids := make([]string, 0, len(books))
	for id, chunks := range books {
		ids = append(ids, id)
		totalChunks += len(chunks)
	}
	sort.Strings(ids)

	fmt.Fprintf(os.Stderr, "Ingested %d books (%d chunks):\n", len(books), totalChunks)
	for _, id := range ids {
		fmt.Fprintf(os.Stderr, "  %s: %d chunks\n", id, len(books[id]))
	}

	embedder, err := index.NewEmbedder(cfg.Embedding)
	if err != nil {
		return fmt.Errorf("create embedder: %w", err)
	}

	indexer := index.NewIndexer(embedder)
	fmt.Fprintf(os.Stderr, "Embedding with %s/%s...\n", cfg.Embedding.Provider, cfg.Embedding.Model)
	if err := indexer.Build(ctx, books); err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if err := indexer.Save(cfg.Index.Path); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	fmt.Printf("✓ Index saved to %s\n", cfg.Index.Path)
	return nil
}
