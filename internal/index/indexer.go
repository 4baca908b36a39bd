package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/canoncheck/canoncheck/internal/model"
)

// embedBatchSize bounds how many chunks are sent per embedding request
const embedBatchSize = 32

// BookIndex holds one book's chunks and their embeddings, row i of
// Embeddings belonging to Chunks[i]
type BookIndex struct {
	Chunks     []model.EvidenceChunk `json:"chunks"`
	Embeddings [][]float64           `json:"embeddings"`
}

// Indexer builds and persists the per-book vector index
type Indexer struct {
	embedder Embedder
	books    map[string]*BookIndex
}

// NewIndexer creates an indexer. The embedder may be nil when the index is
// only loaded, never built.
func NewIndexer(embedder Embedder) *Indexer {
	return &Indexer{
		embedder: embedder,
		books:    make(map[string]*BookIndex),
	}
}

// Build embeds all chunks and stores them per book
func (x *Indexer) Build(ctx context.Context, bookChunks map[string][]model.EvidenceChunk) error {
	if x.embedder == nil {
		return fmt.Errorf("indexer has no embedder configured")
	}

	for bookID, chunks := range bookChunks {
		embeddings := make([][]float64, 0, len(chunks))

		for start := 0; start < len(chunks); start += embedBatchSize {
			end := start + embedBatchSize
			if end > len(chunks) {
				end = len(chunks)
			}

			texts := make([]string, 0, end-start)
			for _, chunk := range chunks[start:end] {
				texts = append(texts, chunk.Text)
			}

			vectors, err := x.embedder.Embed(ctx, texts)
			if err != nil {
				return fmt.Errorf("embed %s chunks %d-%d: %w", bookID, start, end-1, err)
			}
			embeddings = append(embeddings, vectors...)
		}

		x.books[bookID] = &BookIndex{
			Chunks:     chunks,
			Embeddings: embeddings,
		}
	}

	return nil
}

// Book returns the index for a book, or nil if the book is unknown
func (x *Indexer) Book(bookID string) *BookIndex {
	return x.books[bookID]
}

// Books returns the indexed book IDs
func (x *Indexer) Books() []string {
	ids := make([]string, 0, len(x.books))
	for id := range x.books {
		ids = append(ids, id)
	}
	return ids
}

// Save persists the index to a JSON file
func (x *Indexer) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(x.books); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	return nil
}

// Load restores a previously saved index. Returns false without error when
// the file does not exist.
func (x *Indexer) Load(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("open index file: %w", err)
	}
	defer func() { _ = f.Close() }()

	books := make(map[string]*BookIndex)
	if err := json.NewDecoder(f).Decode(&books); err != nil {
		return false, fmt.Errorf("decode index: %w", err)
	}

	x.books = books
	return true, nil
}
