package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	defaultEmbeddingAPIVersion = "2024-02-15-preview"
	defaultEmbeddingDeployment = "text-embedding-ada-002"
	defaultEmbeddingDimensions = 1536
	defaultEmbeddingCacheSize  = 1000
	defaultEmbeddingTimeout    = 60 * time.Second

	// Azure caps the number of inputs per embeddings request.
	maxEmbeddingBatch = 16
)

// AzureEmbedderConfig holds connection settings for an Azure OpenAI
// embeddings deployment.
type AzureEmbedderConfig struct {
	Endpoint       string
	APIKey         string
	APIVersion     string
	DeploymentName string
	// Dimensions is the expected embedding width. 0 adopts the width of the
	// first response.
	Dimensions int
	CacheSize  int
	Timeout    time.Duration
}

// AzureEmbedder produces embeddings through the Azure OpenAI embeddings
// API. Repeated texts are served from an LRU cache.
type AzureEmbedder struct {
	cfg           AzureEmbedderConfig
	embeddingsURL string
	httpClient    *http.Client
	cache         *EmbeddingCache
}

// NewAzureEmbedder creates an embedder for the configured deployment.
func NewAzureEmbedder(cfg AzureEmbedderConfig) (*AzureEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("azure embeddings: API key is required")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("azure embeddings: endpoint is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultEmbeddingAPIVersion
	}
	if cfg.DeploymentName == "" {
		cfg.DeploymentName = defaultEmbeddingDeployment
	}
	if cfg.Dimensions < 0 {
		cfg.Dimensions = defaultEmbeddingDimensions
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultEmbeddingCacheSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultEmbeddingTimeout
	}

	return &AzureEmbedder{
		cfg: cfg,
		embeddingsURL: fmt.Sprintf("%s/openai/deployments/%s/embeddings?api-version=%s",
			strings.TrimRight(cfg.Endpoint, "/"),
			url.PathEscape(cfg.DeploymentName),
			url.QueryEscape(cfg.APIVersion)),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      NewEmbeddingCache(cfg.CacheSize),
	}, nil
}

type embeddingRequest struct {
	Input []string `json:"input"`
}

type embeddingData struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

type embeddingResponse struct {
	Data []embeddingData `json:"data"`
}

// Embed returns the embedding for text, using the cache when available.
func (e *AzureEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, ok := e.cache.Get(text); ok {
		return cached, nil
	}
	embeddings, err := e.request(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	e.cache.Set(text, embeddings[0])
	return embeddings[0], nil
}

// EmbedBatch embeds texts in request-sized batches, preserving input order.
func (e *AzureEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if cached, ok := e.cache.Get(text); ok {
			out[i] = cached
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	for start := 0; start < len(missing); start += maxEmbeddingBatch {
		end := start + maxEmbeddingBatch
		if end > len(missing) {
			end = len(missing)
		}
		embeddings, err := e.request(ctx, missing[start:end])
		if err != nil {
			return nil, err
		}
		for i, emb := range embeddings {
			idx := missingIdx[start+i]
			out[idx] = emb
			e.cache.Set(texts[idx], emb)
		}
	}
	return out, nil
}

func (e *AzureEmbedder) request(ctx context.Context, input []string) ([][]float32, error) {
	body, err := json.Marshal(embeddingRequest{Input: input})
	if err != nil {
		return nil, fmt.Errorf("marshal embeddings request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.embeddingsURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embeddings request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", e.cfg.APIKey)

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call embeddings endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read embeddings response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("azure embeddings: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	if len(parsed.Data) != len(input) {
		return nil, fmt.Errorf("azure embeddings: got %d embeddings for %d inputs", len(parsed.Data), len(input))
	}

	// Responses may arrive out of order; the index field is authoritative.
	sort.Slice(parsed.Data, func(i, j int) bool { return parsed.Data[i].Index < parsed.Data[j].Index })

	out := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		if e.cfg.Dimensions == 0 {
			e.cfg.Dimensions = len(d.Embedding)
		}
		if len(d.Embedding) != e.cfg.Dimensions {
			return nil, fmt.Errorf("azure embeddings: embedding has %d dimensions, expected %d", len(d.Embedding), e.cfg.Dimensions)
		}
		out[i] = d.Embedding
	}
	return out, nil
}

// Dimensions returns the embedding width, or 0 before the first response
// when no width was configured.
func (e *AzureEmbedder) Dimensions() int {
	return e.cfg.Dimensions
}

// Close is a no-op for AzureEmbedder.
func (e *AzureEmbedder) Close() error {
	return nil
}
