package vector

import (
	"fmt"
	"sort"
)

// FlatIndex is an in-memory exact inner-product index. Vectors are copied
// and normalized to unit L2 norm at construction, so inner product equals
// cosine similarity; the caller's vectors are left untouched. The index is
// immutable after construction.
type FlatIndex struct {
	dimensions int
	vectors    [][]float32
}

// NewFlatIndex builds an index over the given vectors. All vectors must
// share one dimension; ErrDimensionMismatch is returned otherwise. An empty
// vector set is valid and yields an index that returns no results.
func NewFlatIndex(vectors [][]float32) (*FlatIndex, error) {
	if len(vectors) == 0 {
		return &FlatIndex{}, nil
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: vector 0 has dimension 0", ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, expected %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}
	return &FlatIndex{
		dimensions: dim,
		vectors:    normalizedCopies(vectors),
	}, nil
}

// Search returns the top-k positions by inner product over the normalized
// vectors. The query is normalized on a copy; ties keep insertion order.
func (f *FlatIndex) Search(query []float32, k int) ([]Result, error) {
	if len(f.vectors) == 0 {
		return nil, nil
	}
	if len(query) != f.dimensions {
		return nil, fmt.Errorf("%w: query has dimension %d, expected %d", ErrDimensionMismatch, len(query), f.dimensions)
	}
	if k <= 0 {
		return nil, nil
	}
	q := normalizedCopy(query)
	results := make([]Result, len(f.vectors))
	for i, vec := range f.vectors {
		results[i] = Result{Position: i, Score: InnerProduct(q, vec)}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Dimensions returns the vector dimension the index was built with.
func (f *FlatIndex) Dimensions() int {
	return f.dimensions
}

// Len returns the number of indexed vectors.
func (f *FlatIndex) Len() int {
	return len(f.vectors)
}

// Close is a no-op for FlatIndex.
func (f *FlatIndex) Close() error {
	return nil
}

// Type returns the index type identifier.
func (f *FlatIndex) Type() string {
	return string(IndexTypeFlat)
}
