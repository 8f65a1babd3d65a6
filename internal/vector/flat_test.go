package vector

import (
	"errors"
	"math"
	"testing"
)

func TestFlatIndex_SearchSelf(t *testing.T) {
	vecs := [][]float32{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 1, 0},
	}
	idx, err := NewFlatIndex(vecs)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	if idx.Len() != 3 {
		t.Errorf("Len=%d, want 3", idx.Len())
	}
	if idx.Dimensions() != 3 {
		t.Errorf("Dimensions=%d, want 3", idx.Dimensions())
	}

	results, err := idx.Search([]float32{0, 1, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Position != 2 {
		t.Errorf("top result position = %d, want 2", results[0].Position)
	}
	if math.Abs(results[0].Score-1.0) > 1e-5 {
		t.Errorf("self-similarity = %f, want ~1.0", results[0].Score)
	}
	if results[1].Score > results[0].Score {
		t.Error("results not sorted by descending score")
	}
}

func TestFlatIndex_OriginalsUntouched(t *testing.T) {
	// The index normalizes copies; the caller's vectors must keep their
	// original magnitudes.
	vecs := [][]float32{{3, 4}, {0, 2}}
	idx, err := NewFlatIndex(vecs)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	if vecs[0][0] != 3 || vecs[0][1] != 4 {
		t.Errorf("caller vector mutated: %v", vecs[0])
	}
	if vecs[1][1] != 2 {
		t.Errorf("caller vector mutated: %v", vecs[1])
	}

	query := []float32{3, 4}
	if _, err := idx.Search(query, 1); err != nil {
		t.Fatal(err)
	}
	if query[0] != 3 || query[1] != 4 {
		t.Errorf("query vector mutated: %v", query)
	}
}

func TestFlatIndex_Empty(t *testing.T) {
	idx, err := NewFlatIndex(nil)
	if err != nil {
		t.Fatalf("empty index must construct: %v", err)
	}
	defer idx.Close()
	if idx.Len() != 0 || idx.Dimensions() != 0 {
		t.Errorf("Len=%d Dimensions=%d, want 0 0", idx.Len(), idx.Dimensions())
	}
	results, err := idx.Search([]float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("search on empty index must not error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestFlatIndex_QueryDimensionMismatch(t *testing.T) {
	idx, err := NewFlatIndex([][]float32{{1, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	_, err = idx.Search([]float32{1, 0}, 1)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestFlatIndex_RaggedVectors(t *testing.T) {
	_, err := NewFlatIndex([][]float32{{1, 0}, {1, 0, 0}})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestFlatIndex_StableTies(t *testing.T) {
	// Identical vectors tie exactly; insertion order must be preserved.
	vecs := [][]float32{
		{0, 1},
		{1, 0},
		{1, 0},
		{1, 0},
	}
	idx, err := NewFlatIndex(vecs)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	results, err := idx.Search([]float32{1, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 2, 3}
	for i, r := range results {
		if r.Position != want[i] {
			t.Errorf("result %d position = %d, want %d", i, r.Position, want[i])
		}
	}
}

func TestFlatIndex_KLargerThanLen(t *testing.T) {
	idx, err := NewFlatIndex([][]float32{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	results, err := idx.Search([]float32{1, 0}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}

	results, err = idx.Search([]float32{1, 0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("k=0 should return no results, got %d", len(results))
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 0}
	if sim := CosineSimilarity(a, b); math.Abs(sim-1.0) > 1e-6 {
		t.Errorf("identical vectors: %f, want 1.0", sim)
	}
	c := []float32{0, 1}
	if sim := CosineSimilarity(a, c); sim != 0 {
		t.Errorf("orthogonal vectors: %f, want 0", sim)
	}
	// Unnormalized inputs are normalized inside.
	d := []float32{5, 0}
	if sim := CosineSimilarity(a, d); math.Abs(sim-1.0) > 1e-6 {
		t.Errorf("scaled vector: %f, want 1.0", sim)
	}
	if sim := CosineSimilarity(a, []float32{1}); sim != 0 {
		t.Errorf("length mismatch: %f, want 0", sim)
	}
}

func TestInnerProduct(t *testing.T) {
	if got := InnerProduct([]float32{1, 2}, []float32{3, 4}); got != 11 {
		t.Errorf("InnerProduct = %f, want 11", got)
	}
	if got := InnerProduct([]float32{1}, []float32{1, 2}); got != 0 {
		t.Errorf("mismatched lengths = %f, want 0", got)
	}
}

func TestL2Norm(t *testing.T) {
	if got := L2Norm([]float32{3, 4}); math.Abs(got-5) > 1e-6 {
		t.Errorf("L2Norm = %f, want 5", got)
	}
}
