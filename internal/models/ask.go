package models

import "fmt"

// Default retrieval and sampling parameters for a question.
const (
	DefaultTopK        = 5
	MaxTopK            = 50
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 500
)

// AskRequest is a question against a single cached document.
type AskRequest struct {
	Question   string `json:"question"`
	DocumentID string `json:"document_id"`
	// TopK is the number of chunks to retrieve. 0 means DefaultTopK.
	TopK int `json:"top_k,omitempty"`
	// Temperature overrides the sampling temperature when non-nil.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens caps the completion length. 0 means DefaultMaxTokens.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// Validate checks required fields and applies defaults in place.
func (r *AskRequest) Validate() error {
	if r.Question == "" {
		return fmt.Errorf("question cannot be empty")
	}
	if r.DocumentID == "" {
		return fmt.Errorf("document_id cannot be empty")
	}
	if r.TopK <= 0 {
		r.TopK = DefaultTopK
	}
	if r.TopK > MaxTopK {
		r.TopK = MaxTopK
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 2) {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	return nil
}

// SamplingTemperature returns the requested temperature or the default.
func (r *AskRequest) SamplingTemperature() float64 {
	if r.Temperature != nil {
		return *r.Temperature
	}
	return DefaultTemperature
}
