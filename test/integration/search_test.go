// Package integration wires real storage and indices through the search
// and ask paths.
package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hyperjump/kotae/internal/cache"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/extract"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/keyword"
	"github.com/hyperjump/kotae/internal/llm"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/retrieval"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/storage"
)

type fixedClient struct{ text string }

func (c *fixedClient) Complete(ctx context.Context, req *llm.CompletionRequest) (string, error) {
	return c.text, nil
}

func (c *fixedClient) Deployment() string { return "integration-gpt" }

type components struct {
	cache    *cache.VectorCache
	engine   *search.Engine
	indexer  *indexer.Indexer
	answerer *retrieval.Answerer
}

func buildComponents(t *testing.T, client llm.Client) *components {
	t.Helper()
	dir := t.TempDir()
	searchCfg := &config.SearchConfig{
		ChunkSize:      10,
		ChunkOverlap:   2,
		TopKCandidates: 20,
		KeywordWeight:  0.5,
		SemanticWeight: 0.5,
		SnippetLength:  200,
	}

	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "db.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	embedder := embedding.NewMockEmbedder(4)
	vc := cache.NewVectorCache()

	kwIndex, err := keyword.NewBleveIndex(filepath.Join(dir, "bleve"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = kwIndex.Close() })

	return &components{
		cache:    vc,
		engine:   search.NewEngine(store, embedder, vc, kwIndex, searchCfg),
		indexer:  indexer.NewIndexer(store, embedder, vc, kwIndex, searchCfg, extract.NewExtractor()),
		answerer: retrieval.NewAnswerer(vc, embedder, client, store),
	}
}

func TestIntegration_Search(t *testing.T) {
	c := buildComponents(t, nil)
	ctx := context.Background()

	if err := c.indexer.IndexDocument(ctx, &models.DocumentInput{
		ID: "doc1", Title: "ML", Content: "Machine learning algorithms learn from data.",
	}); err != nil {
		t.Fatal(err)
	}
	if err := c.indexer.IndexDocument(ctx, &models.DocumentInput{
		ID: "doc2", Title: "Search", Content: "Semantic search uses embeddings to find similar content.",
	}); err != nil {
		t.Fatal(err)
	}

	resp, err := c.engine.Search(ctx, &models.SearchQuery{
		Query: "machine learning", Limit: 5, KeywordEnabled: true, SemanticEnabled: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total < 1 {
		t.Errorf("expected at least 1 result, got %d", resp.Total)
	}
	var found bool
	for _, r := range resp.Results {
		if r.DocumentID == "doc1" {
			found = true
		}
	}
	if !found {
		t.Errorf("doc1 missing from results: %+v", resp.Results)
	}
}

func TestIntegration_Ask(t *testing.T) {
	c := buildComponents(t, &fixedClient{text: "It learns patterns from data."})
	ctx := context.Background()

	if err := c.indexer.IndexDocument(ctx, &models.DocumentInput{
		ID: "doc1", Title: "ML", Content: "Machine learning algorithms learn patterns from training data.",
	}); err != nil {
		t.Fatal(err)
	}

	answer, err := c.answerer.Ask(ctx, &models.AskRequest{
		Question:   "What do the algorithms learn?",
		DocumentID: "doc1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if answer.Answer != "It learns patterns from data." {
		t.Errorf("answer: got %q", answer.Answer)
	}
	if answer.ChunksRetrieved < 1 || len(answer.Sources) == 0 {
		t.Errorf("retrieval empty: %d chunks, %d sources", answer.ChunksRetrieved, len(answer.Sources))
	}
	if answer.ModelUsed != "integration-gpt" {
		t.Errorf("model_used: got %q", answer.ModelUsed)
	}
}

// Indexing the same ID again must replace the cached entry, not stack a
// second copy next to it.
func TestIntegration_ReindexReplacesDocument(t *testing.T) {
	c := buildComponents(t, nil)
	ctx := context.Background()

	if err := c.indexer.IndexDocument(ctx, &models.DocumentInput{
		ID: "doc1", Title: "V1", Content: "Original content about alpha topics.",
	}); err != nil {
		t.Fatal(err)
	}
	if err := c.indexer.IndexDocument(ctx, &models.DocumentInput{
		ID: "doc1", Title: "V2", Content: "Replacement content about beta topics.",
	}); err != nil {
		t.Fatal(err)
	}

	stats := c.cache.Stats()
	if stats.TotalDocuments != 1 {
		t.Errorf("cached documents: got %d, want 1", stats.TotalDocuments)
	}

	resp, err := c.engine.Search(ctx, &models.SearchQuery{
		Query: "beta", Limit: 5, KeywordEnabled: true, SemanticEnabled: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total < 1 {
		t.Fatalf("replacement content not searchable")
	}
	for _, r := range resp.Results {
		if r.DocumentID != "doc1" {
			t.Errorf("unexpected document %q in results", r.DocumentID)
		}
	}

	// Keyword-only probe: terms from the old revision must be gone.
	stale, err := c.engine.Search(ctx, &models.SearchQuery{
		Query: "alpha", Limit: 5, KeywordEnabled: true, SemanticEnabled: false,
	})
	if err != nil {
		t.Fatal(err)
	}
	if stale.Total != 0 {
		t.Errorf("old revision still keyword-searchable: %+v", stale.Results)
	}
}
