package vector

import "fmt"

// IndexType selects the similarity index implementation.
type IndexType string

const (
	// IndexTypeFlat uses in-memory brute-force exact search. The default;
	// suitable for per-document vector sets.
	IndexTypeFlat IndexType = "flat"
	// IndexTypeFAISS uses the FAISS IndexFlatIP C API for the same exact
	// search. Requires the FAISS library and build tag -tags=faiss.
	IndexTypeFAISS IndexType = "faiss"
)

// NewIndex builds a similarity index of the given type over vectors.
// An empty indexType means IndexTypeFlat.
func NewIndex(indexType IndexType, vectors [][]float32) (Index, error) {
	switch indexType {
	case IndexTypeFlat, "":
		return NewFlatIndex(vectors)
	case IndexTypeFAISS:
		return NewFlatIPIndex(vectors)
	default:
		return nil, fmt.Errorf("unknown index type: %s (supported: flat, faiss)", indexType)
	}
}

// IsFAISSAvailable returns true if FAISS support is compiled in.
// This is determined by the build tag -tags=faiss.
func IsFAISSAvailable() bool {
	idx, err := NewFlatIPIndex([][]float32{{1}})
	if err != nil {
		return false
	}
	_ = idx.Close()
	return true
}
