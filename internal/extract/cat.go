package extract

import (
	"fmt"
	"strings"

	"github.com/lu4p/cat"
)

// extractCat extracts text from .odt and .rtf bytes. cat sniffs the actual
// format from the content rather than trusting the extension, so both routes
// share one entry point.
func extractCat(content []byte) (string, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return "", fmt.Errorf("extract document: %w", err)
	}
	return strings.TrimSpace(text), nil
}
