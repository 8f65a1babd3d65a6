// Package embedding produces vector embeddings for text. Providers: Azure
// OpenAI embeddings, local ONNX inference (requires CGO), and a
// deterministic mock for tests and offline use.
package embedding

import "context"

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// Provider names accepted in configuration.
const (
	ProviderAzure = "azure"
	ProviderONNX  = "onnx"
	ProviderMock  = "mock"
)
