package models

import "time"

// CacheStats is a consistent snapshot of the vector cache.
type CacheStats struct {
	TotalDocuments int  `json:"total_documents"`
	TotalChunks    int  `json:"total_chunks"`
	TotalVectors   int  `json:"total_vectors"`
	Initialized    bool `json:"initialized"`
	// LastRefresh is nil until the cache has been marked initialized.
	LastRefresh *time.Time `json:"last_refresh"`
	DocumentIDs []string   `json:"document_ids"`
}
