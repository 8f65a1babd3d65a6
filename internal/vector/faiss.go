//go:build faiss && cgo
// +build faiss,cgo

package vector

/*
#cgo CFLAGS: -I/opt/homebrew/include -I/usr/local/include
#cgo LDFLAGS: -L/opt/homebrew/lib -L/usr/local/lib -lfaiss_c

#include <stdlib.h>
#include <faiss/c_api/Index_c.h>
#include <faiss/c_api/IndexFlat_c.h>
#include <faiss/c_api/error_c.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// FlatIPIndex is an exact inner-product index backed by FAISS IndexFlatIP.
// Like FlatIndex it is built once from normalized copies of the vectors and
// never mutated, so Search needs no locking.
type FlatIPIndex struct {
	index      *C.FaissIndexFlatIP
	dimensions int
	count      int
}

// NewFlatIPIndex builds a FAISS IndexFlatIP over unit-norm copies of vectors.
func NewFlatIPIndex(vectors [][]float32) (*FlatIPIndex, error) {
	if len(vectors) == 0 {
		return &FlatIPIndex{}, nil
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

	var index *C.FaissIndexFlatIP
	ret := C.faiss_IndexFlatIP_new_with(&index, C.idx_t(dim))
	if ret != 0 {
		return nil, fmt.Errorf("create FAISS index: %s", faissLastError())
	}

	normalized := normalizedCopies(vectors)
	flat := make([]float32, len(normalized)*dim)
	for i, vec := range normalized {
		copy(flat[i*dim:(i+1)*dim], vec)
	}
	ret = C.faiss_Index_add(index, C.idx_t(len(normalized)), (*C.float)(unsafe.Pointer(&flat[0])))
	if ret != 0 {
		C.faiss_Index_free(index)
		return nil, fmt.Errorf("add vectors to FAISS index: %s", faissLastError())
	}

	return &FlatIPIndex{
		index:      index,
		dimensions: dim,
		count:      len(normalized),
	}, nil
}

func faissLastError() string {
	cErr := C.faiss_get_last_error()
	if cErr == nil {
		return "unknown error"
	}
	return C.GoString(cErr)
}

// Search returns the top-k positions by inner product. FAISS labels are the
// insertion positions, which map directly onto chunk positions.
func (f *FlatIPIndex) Search(query []float32, k int) ([]Result, error) {
	if f.count == 0 {
		return nil, nil
	}
	if len(query) != f.dimensions {
		return nil, fmt.Errorf("%w: query has dimension %d, expected %d", ErrDimensionMismatch, len(query), f.dimensions)
	}
	if k <= 0 {
		return nil, nil
	}
	if k > f.count {
		k = f.count
	}

	q := normalizedCopy(query)
	scores := make([]float32, k)
	labels := make([]int64, k)
	ret := C.faiss_Index_search(
		f.index,
		1,
		(*C.float)(unsafe.Pointer(&q[0])),
		C.idx_t(k),
		(*C.float)(unsafe.Pointer(&scores[0])),
		(*C.idx_t)(unsafe.Pointer(&labels[0])),
	)
	if ret != 0 {
		return nil, fmt.Errorf("FAISS search: %s", faissLastError())
	}

	results := make([]Result, 0, k)
	for i := 0; i < k; i++ {
		if labels[i] < 0 {
			continue
		}
		results = append(results, Result{Position: int(labels[i]), Score: float64(scores[i])})
	}
	return results, nil
}

// Dimensions returns the vector dimension the index was built with.
func (f *FlatIPIndex) Dimensions() int {
	return f.dimensions
}

// Len returns the number of indexed vectors.
func (f *FlatIPIndex) Len() int {
	return f.count
}

// Close frees the FAISS index resources.
func (f *FlatIPIndex) Close() error {
	if f.index != nil {
		C.faiss_Index_free(f.index)
		f.index = nil
	}
	return nil
}

// Type returns the index type identifier.
func (f *FlatIPIndex) Type() string {
	return string(IndexTypeFAISS)
}
