package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/canoncheck/canoncheck/internal/index"
	"github.com/canoncheck/canoncheck/internal/model"
)

// Retriever ranks pre-embedded evidence chunks against a claim by cosine
// similarity. The stored chunk embeddings are never recomputed; only the
// incoming query text is embedded.
type Retriever struct {
	indexer   *index.Indexer
	embedder  index.Embedder
	topK      int
	threshold float64
}

// NewRetriever creates a retriever over a built or loaded index
func NewRetriever(indexer *index.Indexer, embedder index.Embedder, cfg model.RetrievalConfig) *Retriever {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 5
	}

	return &Retriever{
		indexer:   indexer,
		embedder:  embedder,
		topK:      topK,
		threshold: cfg.SimilarityThreshold,
	}
}

// Retrieve returns the most similar chunks for a query, ordered by
// similarity descending, capped at top-k and filtered by the similarity
// threshold. An unknown book yields an empty result, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query, bookID string) ([]model.EvidenceChunk, error) {
	book := r.indexer.Book(bookID)
	if book == nil || len(book.Chunks) == 0 {
		return nil, nil
	}

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVec := vectors[0]

	type scored struct {
		idx        int
		similarity float64
	}

	ranked := make([]scored, len(book.Chunks))
	for i := range book.Chunks {
		ranked[i] = scored{idx: i, similarity: cosine(queryVec, book.Embeddings[i])}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].similarity > ranked[b].similarity
	})

	if len(ranked) > r.topK {
		ranked = ranked[:r.topK]
	}

	var results []model.EvidenceChunk
	for _, s := range ranked {
		if s.similarity < r.threshold {
			continue
		}
		chunk := book.Chunks[s.idx]
		chunk.Similarity = s.similarity
		results = append(results, chunk)
	}

	return results, nil
}

// RetrieveForClaims retrieves evidence for each claim, keyed by claim
// position so that duplicate claim texts keep distinct evidence sets
func (r *Retriever) RetrieveForClaims(ctx context.Context, claims []string, bookID string) ([][]model.EvidenceChunk, error) {
	evidence := make([][]model.EvidenceChunk, len(claims))
	for i, claim := range claims {
		chunks, err := r.Retrieve(ctx, claim, bookID)
		if err != nil {
			return nil, fmt.Errorf("retrieve for claim %d: %w", i, err)
		}
		evidence[i] = chunks
	}
	return evidence, nil
}

// cosine computes cosine similarity, returning 0 for zero-information
// vectors instead of dividing by zero
func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
