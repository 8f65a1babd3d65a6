//go:build !faiss || !cgo
// +build !faiss !cgo

package vector

import "fmt"

// FlatIPIndex is a stub that returns an error when FAISS is not available.
// Build with -tags=faiss to enable FAISS support.
type FlatIPIndex struct{}

// NewFlatIPIndex returns an error because FAISS is not available.
func NewFlatIPIndex(vectors [][]float32) (*FlatIPIndex, error) {
	return nil, fmt.Errorf("FAISS not available: build with -tags=faiss and install FAISS library")
}

// Search is not implemented without FAISS.
func (f *FlatIPIndex) Search(query []float32, k int) ([]Result, error) {
	return nil, fmt.Errorf("FAISS not available")
}

// Dimensions returns 0 without FAISS.
func (f *FlatIPIndex) Dimensions() int {
	return 0
}

// Len returns 0 without FAISS.
func (f *FlatIPIndex) Len() int {
	return 0
}

// Close is a no-op without FAISS.
func (f *FlatIPIndex) Close() error {
	return nil
}

// Type returns the index type identifier.
func (f *FlatIPIndex) Type() string {
	return string(IndexTypeFAISS)
}
