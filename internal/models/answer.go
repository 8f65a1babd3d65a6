package models

// Source attributes part of an answer to a retrieved chunk.
// Preview is the chunk text truncated to 200 characters with a trailing
// ellipsis when truncated.
type Source struct {
	ChunkID         string  `json:"chunk_id"`
	SimilarityScore float64 `json:"similarity_score"`
	Preview         string  `json:"preview"`
}

// Answer is the result of a question against a document. A well-formed
// Answer is always returned, even when retrieval finds nothing or the
// completion service fails; those cases carry Confidence 0 and an
// explanatory Answer string.
type Answer struct {
	Answer          string   `json:"answer"`
	Confidence      float64  `json:"confidence"`
	Sources         []Source `json:"sources"`
	ChunksRetrieved int      `json:"chunks_retrieved"`
	ModelUsed       string   `json:"model_used,omitempty"`
	QueryTime       int64    `json:"query_time_ms,omitempty"`
}
