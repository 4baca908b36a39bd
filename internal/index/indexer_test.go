package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/canoncheck/canoncheck/internal/model"
)

// countingEmbedder returns a fixed vector per text and records batch sizes
type countingEmbedder struct {
	batches []int
}

func (e *countingEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	e.batches = append(e.batches, len(texts))
	vectors := make([][]float64, len(texts))
	for i := range vectors {
		vectors[i] = []float64{1, 0, 0}
	}
	return vectors, nil
}

func manyChunks(bookID string, n int) []model.EvidenceChunk {
	chunks := make([]model.EvidenceChunk, n)
	for i := range chunks {
		chunks[i] = model.EvidenceChunk{Text: "text", BookID: bookID, Position: i}
	}
	return chunks
}

func TestIndexer_BuildBatchesEmbedding(t *testing.T) {
	embedder := &countingEmbedder{}
	x := NewIndexer(embedder)

	if err := x.Build(context.Background(), map[string][]model.EvidenceChunk{
		"book": manyChunks("book", 70),
	}); err != nil {
		t.Fatal(err)
	}

	if len(embedder.batches) != 3 {
		t.Fatalf("expected 3 embedding batches for 70 chunks, got %d", len(embedder.batches))
	}
	for _, size := range embedder.batches {
		if size > embedBatchSize {
			t.Errorf("batch size %d exceeds %d", size, embedBatchSize)
		}
	}

	book := x.Book("book")
	if book == nil || len(book.Embeddings) != 70 {
		t.Fatal("every chunk must get an embedding row")
	}
}

func TestIndexer_BuildWithoutEmbedder(t *testing.T) {
	x := NewIndexer(nil)
	if err := x.Build(context.Background(), nil); err == nil {
		t.Error("expected an error when no embedder is configured")
	}
}

func TestIndexer_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")

	src := NewIndexer(&countingEmbedder{})
	if err := src.Build(context.Background(), map[string][]model.EvidenceChunk{
		"book": manyChunks("book", 3),
	}); err != nil {
		t.Fatal(err)
	}
	if err := src.Save(path); err != nil {
		t.Fatal(err)
	}

	dst := NewIndexer(nil)
	found, err := dst.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected the index file to be found")
	}

	book := dst.Book("book")
	if book == nil || len(book.Chunks) != 3 || len(book.Embeddings) != 3 {
		t.Fatalf("round trip lost data: %+v", book)
	}
}

func TestIndexer_LoadMissingFile(t *testing.T) {
	x := NewIndexer(nil)
	found, err := x.Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if found {
		t.Error("missing file reported as found")
	}
}

func TestIndexer_UnknownBook(t *testing.T) {
	if NewIndexer(nil).Book("nope") != nil {
		t.Error("unknown book should return nil")
	}
}
