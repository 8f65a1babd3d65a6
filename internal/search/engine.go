// Package search provides the main hybrid search engine.
package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hyperjump/kotae/internal/cache"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/keyword"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/storage"
	"github.com/hyperjump/kotae/pkg/utils"
)

// Engine runs hybrid (keyword + semantic) search over ingested documents.
// Semantic search reads every cached entry's similarity index.
type Engine struct {
	storage      storage.Storage
	embedder     embedding.Embedder
	cache        *cache.VectorCache
	keywordIndex keyword.KeywordIndex
	config       *config.SearchConfig
}

// NewEngine creates a search engine with the given dependencies.
func NewEngine(
	storage storage.Storage,
	embedder embedding.Embedder,
	vectorCache *cache.VectorCache,
	keywordIndex keyword.KeywordIndex,
	cfg *config.SearchConfig,
) *Engine {
	return &Engine{
		storage:      storage,
		embedder:     embedder,
		cache:        vectorCache,
		keywordIndex: keywordIndex,
		config:       cfg,
	}
}

// Search runs hybrid search and returns passage-level results.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		keywordResults []*keyword.KeywordResult
		semanticHits   []*SemanticHit
		errChan        = make(chan error, 2)
		wg             sync.WaitGroup
	)

	if query.KeywordEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, err := e.keywordIndex.Search(ctx, query.Query, e.config.TopKCandidates)
			if err != nil {
				errChan <- fmt.Errorf("keyword search failed: %w", err)
				return
			}
			keywordResults = results
		}()
	}

	if query.SemanticEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hits, err := e.semanticSearch(ctx, query.Query, query.DocumentID)
			if err != nil {
				errChan <- err
				return
			}
			semanticHits = hits
		}()
	}

	wg.Wait()
	close(errChan)
	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	if query.DocumentID != "" {
		keywordResults = filterByDocument(keywordResults, query.DocumentID)
	}

	keywordWeight, semanticWeight := e.weights(query)
	keywordScores := NormalizeKeywordScores(keywordResults)
	semanticScores := NormalizeSemanticScores(semanticHits)
	fusedResults := Fuse(keywordScores, semanticScores, keywordWeight, semanticWeight)

	if query.MinScore > 0 {
		filtered := fusedResults[:0]
		for _, r := range fusedResults {
			if r.Score >= query.MinScore {
				filtered = append(filtered, r)
			}
		}
		fusedResults = filtered
	}

	total := len(fusedResults)
	if len(fusedResults) > query.Limit {
		fusedResults = fusedResults[:query.Limit]
	}

	response := &models.SearchResponse{
		Results:   make([]*models.SearchResult, 0, len(fusedResults)),
		Total:     total,
		QueryTime: time.Since(startTime).Milliseconds(),
		Query:     query.Query,
	}

	for i, fusedResult := range fusedResults {
		chunk, err := e.storage.GetChunk(ctx, fusedResult.ChunkID)
		if err != nil {
			continue
		}
		response.Results = append(response.Results, &models.SearchResult{
			DocumentID:    chunk.DocumentID,
			ChunkID:       fusedResult.ChunkID,
			Snippet:       utils.Truncate(chunk.Content, e.config.SnippetLength),
			Score:         fusedResult.Score,
			KeywordScore:  fusedResult.KeywordScore,
			SemanticScore: fusedResult.SemanticScore,
			Rank:          i + 1,
		})
	}
	return response, nil
}

// semanticSearch embeds the query and searches the similarity index of every
// cached entry (or a single entry when documentID is set), keeping the global
// top candidates.
func (e *Engine) semanticSearch(ctx context.Context, query, documentID string) ([]*SemanticHit, error) {
	queryEmbedding, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}

	var ids []string
	if documentID != "" {
		ids = []string{documentID}
	} else {
		ids = e.cache.DocumentIDs()
	}

	var hits []*SemanticHit
	for _, id := range ids {
		entry, ok := e.cache.Get(id)
		if !ok {
			continue
		}
		results, err := entry.Index.Search(queryEmbedding, e.config.TopKCandidates)
		if err != nil {
			return nil, fmt.Errorf("vector search failed for %s: %w", id, err)
		}
		for _, r := range results {
			hits = append(hits, &SemanticHit{ChunkID: entry.Chunks[r.Position].ID, Score: r.Score})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > e.config.TopKCandidates {
		hits = hits[:e.config.TopKCandidates]
	}
	return hits, nil
}

// weights returns the effective fusion weights, renormalized so a
// single-mode query still produces scores on the full [0,1] scale.
func (e *Engine) weights(query *models.SearchQuery) (keywordWeight, semanticWeight float64) {
	keywordWeight = e.config.KeywordWeight
	semanticWeight = e.config.SemanticWeight
	if !query.KeywordEnabled {
		keywordWeight = 0
	}
	if !query.SemanticEnabled {
		semanticWeight = 0
	}
	if total := keywordWeight + semanticWeight; total > 0 {
		keywordWeight /= total
		semanticWeight /= total
	}
	return keywordWeight, semanticWeight
}

func filterByDocument(results []*keyword.KeywordResult, documentID string) []*keyword.KeywordResult {
	filtered := results[:0]
	for _, r := range results {
		if r.DocumentID == documentID {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
