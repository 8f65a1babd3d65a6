// Package models defines core data structures for documents, chunks, questions, and answers.
package models

import "time"

// Metadata is an open-ended key/value record describing a document.
// The cache and storage layers pass it through without interpreting its contents.
type Metadata map[string]interface{}

// Copy returns a shallow copy of the metadata map. Nil metadata copies to an empty map.
func (m Metadata) Copy() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Document represents a stored document. Content holds the full extracted
// text; chunking and embedding derive from it.
type Document struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Source    string    `json:"source,omitempty" db:"source"`
	Metadata  Metadata  `json:"metadata" db:"metadata"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Chunk is a retrievable unit of document text. Position is the chunk's
// 0-based offset within its document; the i-th cached vector corresponds to
// the chunk with Position i. Chunks never carry query-specific scores;
// retrieval returns ScoredChunk pairs instead.
type Chunk struct {
	ID       string `json:"chunk_id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// ScoredChunk pairs a chunk with its query-time similarity score.
// Produced by retrieval, ordered by descending score.
type ScoredChunk struct {
	Chunk
	Score float64 `json:"similarity_score"`
}

// DocumentChunk is the persisted form of a chunk, including its embedding.
// The embedding is excluded from JSON responses.
type DocumentChunk struct {
	ID         string    `json:"id" db:"id"`
	DocumentID string    `json:"document_id" db:"document_id"`
	Content    string    `json:"content" db:"content"`
	Position   int       `json:"position" db:"position"`
	Embedding  []float32 `json:"-" db:"-"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// DocumentInput is the input for creating or replacing a document.
type DocumentInput struct {
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title,omitempty"`
	Content  string   `json:"content"`
	Source   string   `json:"source,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
}
