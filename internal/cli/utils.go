// Package cli provides output formatting for the kotae command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/kotae/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const resultSeparator = "─────────────────────────────────────────────────────────"

// WriteAnswer writes a generated answer to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteAnswer(w io.Writer, answer *models.Answer, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	default:
		writeAnswerText(w, answer)
		return nil
	}
}

func writeAnswerText(w io.Writer, answer *models.Answer) {
	fmt.Fprintf(w, "\n%s\n\n", answer.Answer)
	fmt.Fprintf(w, "Confidence: %.2f", answer.Confidence)
	if answer.ModelUsed != "" {
		fmt.Fprintf(w, " | Model: %s", answer.ModelUsed)
	}
	if answer.QueryTime > 0 {
		fmt.Fprintf(w, " | %dms", answer.QueryTime)
	}
	fmt.Fprintln(w)
	if len(answer.Sources) == 0 {
		return
	}
	fmt.Fprintf(w, "\nSources (%d chunks retrieved):\n", answer.ChunksRetrieved)
	for i, src := range answer.Sources {
		fmt.Fprintln(w, resultSeparator)
		fmt.Fprintf(w, "[%d] %s | Similarity: %.4f\n", i+1, src.ChunkID, src.SimilarityScore)
		if src.Preview != "" {
			fmt.Fprintf(w, "%s\n", src.Preview)
		}
	}
}

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results in %dms for %q\n\n",
		response.Total, response.QueryTime, response.Query)
	for _, result := range response.Results {
		fmt.Fprintln(w, resultSeparator)
		fmt.Fprintf(w, "Rank: %d | Score: %.4f (Keyword: %.4f, Semantic: %.4f)\n",
			result.Rank, result.Score, result.KeywordScore, result.SemanticScore)
		fmt.Fprintf(w, "Document: %s | Chunk: %s\n", result.DocumentID, result.ChunkID)
		if result.Snippet != "" {
			fmt.Fprintf(w, "\n%s\n", result.Snippet)
		}
		fmt.Fprintln(w)
	}
}

// StatusConfig is the configuration block of a status report.
type StatusConfig struct {
	EmbeddingProvider   string `json:"embedding_provider,omitempty"`
	EmbeddingDimensions int    `json:"embedding_dimensions,omitempty"`
	ChunkSize           int    `json:"chunk_size,omitempty"`
	ChunkOverlap        int    `json:"chunk_overlap,omitempty"`
	VectorIndexType     string `json:"vector_index_type,omitempty"`
	DatabasePath        string `json:"database_path,omitempty"`
	BleveIndexPath      string `json:"bleve_index_path,omitempty"`
	LLMConfigured       bool   `json:"llm_configured"`
}

// StatusReport mirrors the GET /api/v1/status response body.
type StatusReport struct {
	Documents      int64              `json:"documents"`
	Chunks         int64              `json:"chunks"`
	Cache          *models.CacheStats `json:"cache,omitempty"`
	DiskUsageBytes *int64             `json:"disk_usage_bytes,omitempty"`
	Config         *StatusConfig      `json:"config,omitempty"`
}

// WriteStatus writes a status report to w in the given format.
func WriteStatus(w io.Writer, status *StatusReport, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	default:
		writeStatusText(w, status)
		return nil
	}
}

func writeStatusText(w io.Writer, status *StatusReport) {
	fmt.Fprintf(w, "documents:          %d   # indexed documents\n", status.Documents)
	fmt.Fprintf(w, "chunks:             %d   # stored text chunks\n", status.Chunks)
	if status.Cache != nil {
		fmt.Fprintf(w, "cached_documents:   %d   # documents in the vector cache\n", status.Cache.TotalDocuments)
		fmt.Fprintf(w, "cached_vectors:     %d   # vectors held in memory\n", status.Cache.TotalVectors)
		fmt.Fprintf(w, "cache_initialized:  %t\n", status.Cache.Initialized)
		if status.Cache.LastRefresh != nil {
			fmt.Fprintf(w, "last_refresh:       %s\n", status.Cache.LastRefresh.Format("2006-01-02 15:04:05"))
		}
	}
	if status.DiskUsageBytes != nil {
		fmt.Fprintf(w, "disk_usage_bytes:   %d   # storage + indices on disk\n", *status.DiskUsageBytes)
	}
	if status.Config == nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "# configuration")
	if status.Config.EmbeddingProvider != "" {
		fmt.Fprintf(w, "embedding_provider: %s\n", status.Config.EmbeddingProvider)
	}
	if status.Config.EmbeddingDimensions > 0 {
		fmt.Fprintf(w, "embedding_dims:     %d\n", status.Config.EmbeddingDimensions)
	}
	if status.Config.ChunkSize > 0 {
		fmt.Fprintf(w, "chunk_size:         %d\n", status.Config.ChunkSize)
	}
	if status.Config.ChunkOverlap > 0 {
		fmt.Fprintf(w, "chunk_overlap:      %d\n", status.Config.ChunkOverlap)
	}
	if status.Config.VectorIndexType != "" {
		fmt.Fprintf(w, "vector_index_type:  %s\n", status.Config.VectorIndexType)
	}
	fmt.Fprintf(w, "llm_configured:     %t\n", status.Config.LLMConfigured)
	if status.Config.DatabasePath != "" {
		fmt.Fprintf(w, "database_path:      %s\n", status.Config.DatabasePath)
	}
	if status.Config.BleveIndexPath != "" {
		fmt.Fprintf(w, "bleve_index_path:   %s\n", status.Config.BleveIndexPath)
	}
}
