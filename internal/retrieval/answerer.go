package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/cache"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/llm"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/storage"
)

const (
	answerServiceUnavailable = "Azure OpenAI service not available"
	answerNoContext          = "No relevant context found in the document to answer this question."
	answerEmptyResponse      = "Unable to generate response - empty response from Azure OpenAI"
)

// Answerer answers questions about cached documents. Cache misses are
// warmed from storage when a store is configured. Completion failures never
// escape as errors; they degrade to a structured Answer with confidence 0.
type Answerer struct {
	cache      *cache.VectorCache
	embedder   embedding.Embedder
	client     llm.Client
	store      storage.Storage
	logger     *zap.Logger
	maxContext int
}

// AnswererOption configures an Answerer.
type AnswererOption func(*Answerer)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) AnswererOption {
	return func(a *Answerer) { a.logger = l }
}

// WithMaxContextLength caps the assembled context size in characters.
func WithMaxContextLength(n int) AnswererOption {
	return func(a *Answerer) { a.maxContext = n }
}

// NewAnswerer creates an answerer over the given cache. client may be nil
// when no completion service is configured; store may be nil when documents
// are only ever loaded through the cache directly.
func NewAnswerer(vc *cache.VectorCache, embedder embedding.Embedder, client llm.Client, store storage.Storage, opts ...AnswererOption) *Answerer {
	a := &Answerer{
		cache:      vc,
		embedder:   embedder,
		client:     client,
		store:      store,
		logger:     zap.NewNop(),
		maxContext: DefaultMaxContextLength,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask answers a question about one document. The returned Answer is always
// well-formed: retrieval misses and completion failures produce explanatory
// answers with confidence 0 rather than errors. Errors are reserved for
// invalid requests and infrastructure faults before the completion call.
func (a *Answerer) Ask(ctx context.Context, req *models.AskRequest) (*models.Answer, error) {
	start := time.Now()
	answer, err := a.ask(ctx, req)
	if err != nil {
		return nil, err
	}
	answer.QueryTime = time.Since(start).Milliseconds()
	return answer, nil
}

func (a *Answerer) ask(ctx context.Context, req *models.AskRequest) (*models.Answer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry, ok := a.lookup(ctx, req.DocumentID)
	if !ok {
		a.logger.Warn("no cached entry for document", zap.String("document_id", req.DocumentID))
		return fallbackAnswer(answerNoContext, 0), nil
	}

	if a.client == nil {
		return fallbackAnswer(answerServiceUnavailable, 0), nil
	}

	queryVec, err := a.embedder.Embed(ctx, req.Question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	results, err := entry.Index.Search(queryVec, req.TopK)
	if err != nil {
		return nil, fmt.Errorf("search document %s: %w", req.DocumentID, err)
	}

	if len(results) == 0 {
		a.logger.Warn("no context retrieved", zap.String("document_id", req.DocumentID))
		return fallbackAnswer(answerNoContext, 0), nil
	}

	ranked := make([]models.ScoredChunk, len(results))
	for i, r := range results {
		ranked[i] = models.ScoredChunk{Chunk: entry.Chunks[r.Position], Score: r.Score}
	}
	a.logger.Debug("retrieved chunks",
		zap.String("document_id", req.DocumentID),
		zap.Int("count", len(ranked)),
		zap.Float64("top_score", ranked[0].Score))

	system, user := llm.AnswerPrompts(req.Question, BuildContext(ranked, a.maxContext))
	text, err := a.client.Complete(ctx, &llm.CompletionRequest{
		System:      system,
		User:        user,
		Temperature: req.SamplingTemperature(),
		MaxTokens:   req.MaxTokens,
		TopP:        llm.AnswerTopP,
	})
	switch {
	case errors.Is(err, llm.ErrEmptyCompletion):
		a.logger.Error("completion service returned no content", zap.String("document_id", req.DocumentID))
		return fallbackAnswer(answerEmptyResponse, len(ranked)), nil
	case err != nil:
		a.logger.Error("completion failed", zap.String("document_id", req.DocumentID), zap.Error(err))
		return fallbackAnswer(fmt.Sprintf("Error generating answer: %v", err), len(ranked)), nil
	}

	confidence := EstimateConfidence(ranked)
	a.logger.Debug("generated answer",
		zap.String("document_id", req.DocumentID),
		zap.Float64("confidence", confidence))

	return &models.Answer{
		Answer:          strings.TrimSpace(text),
		Confidence:      confidence,
		Sources:         SummarizeSources(ranked),
		ChunksRetrieved: len(ranked),
		ModelUsed:       a.client.Deployment(),
	}, nil
}

// fallbackAnswer is the degraded result shape shared by all non-fatal
// failure paths. Sources is empty, never null, in the JSON encoding.
func fallbackAnswer(text string, chunksRetrieved int) *models.Answer {
	return &models.Answer{
		Answer:          text,
		Sources:         []models.Source{},
		ChunksRetrieved: chunksRetrieved,
	}
}

// lookup returns the cache entry for documentID, warming it from storage on
// a miss.
func (a *Answerer) lookup(ctx context.Context, documentID string) (*cache.Entry, bool) {
	if entry, ok := a.cache.Get(documentID); ok {
		return entry, true
	}
	if a.store == nil {
		return nil, false
	}
	if err := a.warmDocument(ctx, documentID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.logger.Warn("failed to warm document",
				zap.String("document_id", documentID), zap.Error(err))
		}
		return nil, false
	}
	return a.cache.Get(documentID)
}

// warmDocument loads one document's persisted chunks and embeddings into
// the cache. Chunks without embeddings are left out of the entry.
func (a *Answerer) warmDocument(ctx context.Context, documentID string) error {
	doc, err := a.store.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	stored, err := a.store.GetChunksByDocumentID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load chunks for %s: %w", documentID, err)
	}

	vectors := make([][]float32, 0, len(stored))
	chunks := make([]models.Chunk, 0, len(stored))
	for _, ch := range stored {
		if len(ch.Embedding) == 0 {
			continue
		}
		vectors = append(vectors, ch.Embedding)
		chunks = append(chunks, models.Chunk{ID: ch.ID, Text: ch.Content, Position: ch.Position})
	}

	meta := doc.Metadata.Copy()
	if doc.Title != "" {
		meta["title"] = doc.Title
	}
	if err := a.cache.Set(documentID, vectors, chunks, meta); err != nil {
		return fmt.Errorf("cache document %s: %w", documentID, err)
	}
	a.logger.Debug("warmed document into cache",
		zap.String("document_id", documentID), zap.Int("chunks", len(chunks)))
	return nil
}
