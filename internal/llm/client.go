// Package llm provides chat completion clients used to generate answers
// from retrieved document context.
package llm

import "context"

// CompletionRequest describes one chat completion call. An empty System
// field omits the system message.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Client generates chat completions.
type Client interface {
	// Complete returns the completion text for the request. A response with
	// no choices or empty content returns ErrEmptyCompletion.
	Complete(ctx context.Context, req *CompletionRequest) (string, error)

	// Deployment returns the model deployment name answers are attributed to.
	Deployment() string
}

// ConnectionStatus is the result of a connectivity probe against the
// completion service.
type ConnectionStatus struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	ModelName      string `json:"model_name,omitempty"`
	DeploymentName string `json:"deployment_name,omitempty"`
	TestResponse   string `json:"test_response,omitempty"`
	Endpoint       string `json:"endpoint,omitempty"`
	APIVersion     string `json:"api_version,omitempty"`
}

// ServiceInfo describes the configured completion service.
type ServiceInfo struct {
	Service        string `json:"service"`
	ModelAvailable bool   `json:"model_available"`
	ModelName      string `json:"model_name,omitempty"`
	DeploymentName string `json:"deployment_name"`
	Endpoint       string `json:"endpoint"`
	APIVersion     string `json:"api_version"`
}
