// Package vector provides exact inner-product similarity search over
// per-document vector sets.
package vector

import "errors"

// ErrDimensionMismatch is returned when a query vector's dimension does not
// match the index dimension, or when an index is built from ragged vectors.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Index is a similarity index over one document's vectors. An Index is built
// once from the full vector set and never mutated afterward, so Search is
// safe for unbounded concurrent callers without locking.
type Index interface {
	// Search returns the top-k positions ordered by descending cosine
	// similarity, with scores in [-1, 1]. Ties keep insertion order.
	// An empty index returns an empty result for any query.
	Search(query []float32, k int) ([]Result, error)
	// Dimensions returns the vector dimension (0 for an empty index).
	Dimensions() int
	// Len returns the number of indexed vectors.
	Len() int
	// Close releases resources held by the index.
	Close() error
}

// Result is a single similarity hit. Position indexes into the vector set
// the index was built from (and thus into the owning document's chunks).
type Result struct {
	Position int
	Score    float64
}
