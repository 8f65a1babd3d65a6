// Package keyword provides keyword (BM25) indexing and search over document chunks.
package keyword

import "context"

// ChunkEntry is the indexable form of one chunk. Title carries the owning
// document's title so questions that name the document still match.
type ChunkEntry struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// KeywordIndex defines keyword search operations.
type KeywordIndex interface {
	Index(ctx context.Context, id string, entry *ChunkEntry) error
	Search(ctx context.Context, query string, limit int) ([]*KeywordResult, error)
	Delete(ctx context.Context, id string) error
	// DeleteByDocument removes every chunk indexed for the document.
	DeleteByDocument(ctx context.Context, documentID string) error
	// DocCount returns the total number of chunks in the index.
	DocCount() (uint64, error)
	Close() error
}

// KeywordResult is a single keyword search hit.
type KeywordResult struct {
	ID         string
	DocumentID string
	Score      float64
}
