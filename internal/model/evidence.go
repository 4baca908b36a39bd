package model

// EvidenceChunk is one passage of a novel, produced once at index time
// and read-only afterwards
type EvidenceChunk struct {
	Text       string  `json:"text"`                 // Passage text
	BookID     string  `json:"book_id"`              // Book the passage belongs to
	ChunkID    string  `json:"chunk_id"`             // Unique within a book
	Position   int     `json:"position"`             // Ordinal within the book
	Similarity float64 `json:"similarity,omitempty"` // Cosine similarity to the query (0.0-1.0)
	WordCount  int     `json:"word_count"`           // Number of words in the passage
}
