// Package retrieval answers questions about cached documents: it searches
// the similarity index, assembles a bounded context from the ranked chunks,
// scores confidence, and calls the completion service.
package retrieval

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

// DefaultMaxContextLength caps the assembled context size in characters.
const DefaultMaxContextLength = 10000

// BuildContext formats ranked chunks into a numbered context block for the
// completion prompt. Chunks are taken in rank order until the next one
// would push the result past maxLength; a chunk is never split. maxLength
// values of 0 or less fall back to DefaultMaxContextLength.
func BuildContext(chunks []models.ScoredChunk, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxContextLength
	}
	parts := make([]string, 0, len(chunks))
	total := 0
	for i, chunk := range chunks {
		part := fmt.Sprintf("[Context %d]\n%s\n", i+1, chunk.Text)
		cost := len(part)
		if len(parts) > 0 {
			cost++ // joining newline
		}
		if total+cost > maxLength {
			break
		}
		parts = append(parts, part)
		total += cost
	}
	return strings.Join(parts, "\n")
}
