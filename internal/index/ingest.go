package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/canoncheck/canoncheck/internal/model"
)

// Ingestor splits novels into fixed-size overlapping word windows
type Ingestor struct {
	chunkSize    int
	chunkOverlap int
	minChunkSize int
}

// NewIngestor creates an ingestor from index configuration
func NewIngestor(cfg model.IndexConfig) *Ingestor {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 300
	}

	overlap := cfg.ChunkOverlap
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	return &Ingestor{
		chunkSize:    chunkSize,
		chunkOverlap: overlap,
		minChunkSize: cfg.MinChunkSize,
	}
}

// ChunkText splits text into overlapping chunks. Undersized trailing chunks
// are dropped unless they are the only chunk.
func (g *Ingestor) ChunkText(text, bookID string) []model.EvidenceChunk {
	words := strings.Fields(text)

	var chunks []model.EvidenceChunk
	step := g.chunkSize - g.chunkOverlap

	for start, idx := 0, 0; start < len(words); start += step {
		end := start + g.chunkSize
		if end > len(words) {
			end = len(words)
		}

		wordCount := end - start
		if wordCount < g.minChunkSize && idx > 0 {
			break
		}

		chunks = append(chunks, model.EvidenceChunk{
			Text:      strings.Join(words[start:end], " "),
			BookID:    bookID,
			ChunkID:   fmt.Sprintf("%s_chunk_%d", bookID, idx),
			Position:  idx,
			WordCount: wordCount,
		})
		idx++
	}

	return chunks
}

// IngestDir loads every .txt file in dir as one book, keyed by filename
// without extension
func (g *Ingestor) IngestDir(dir string) (map[string][]model.EvidenceChunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read book directory: %w", err)
	}

	bookChunks := make(map[string][]model.EvidenceChunk)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		bookID := strings.TrimSuffix(entry.Name(), ".txt")
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		bookChunks[bookID] = g.ChunkText(string(data), bookID)
	}

	if len(bookChunks) == 0 {
		return nil, fmt.Errorf("no .txt books found in %s", dir)
	}

	return bookChunks, nil
}
