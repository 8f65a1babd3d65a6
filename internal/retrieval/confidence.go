package retrieval

import (
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// confidenceWeights favor the best-ranked chunks; ranks past the 5th do not
// contribute.
var confidenceWeights = []float64{1.0, 0.8, 0.6, 0.4, 0.2}

const (
	// maxSources is the number of chunks attributed as answer sources.
	maxSources = 3

	// sourcePreviewLen caps the preview text attached to each source.
	sourcePreviewLen = 200
)

// EstimateConfidence summarizes how well the ranked chunks support an
// answer: a weighted average of their similarity scores, weighted toward
// the top ranks and normalized by the weights actually used, clamped to
// [0, 1]. Empty input yields 0.
func EstimateConfidence(chunks []models.ScoredChunk) float64 {
	if len(chunks) == 0 {
		return 0
	}
	var score, weight float64
	for i, chunk := range chunks {
		if i >= len(confidenceWeights) {
			break
		}
		score += chunk.Score * confidenceWeights[i]
		weight += confidenceWeights[i]
	}
	return utils.Clamp01(score / weight)
}

// SummarizeSources attributes an answer to its top ranked chunks, each with
// a short text preview.
func SummarizeSources(chunks []models.ScoredChunk) []models.Source {
	n := len(chunks)
	if n > maxSources {
		n = maxSources
	}
	sources := make([]models.Source, n)
	for i := 0; i < n; i++ {
		sources[i] = models.Source{
			ChunkID:         chunks[i].ID,
			SimilarityScore: chunks[i].Score,
			Preview:         utils.Truncate(chunks[i].Text, sourcePreviewLen),
		}
	}
	return sources
}
