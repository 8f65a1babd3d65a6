package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultAPIVersion is the Azure OpenAI API version used when none is
	// configured.
	DefaultAPIVersion = "2024-02-15-preview"

	// DefaultDeployment is the deployment name used when none is configured.
	DefaultDeployment = "gpt-4"

	defaultTimeout = 60 * time.Second
	defaultRetries = 2
	retryDelay     = 500 * time.Millisecond
)

// AzureConfig holds the connection settings for an Azure OpenAI deployment.
type AzureConfig struct {
	Endpoint       string
	APIKey         string
	APIVersion     string
	DeploymentName string
	Timeout        time.Duration
	MaxRetries     int
}

// AzureClient calls the Azure OpenAI chat completions API. It is safe for
// concurrent use.
type AzureClient struct {
	cfg            AzureConfig
	completionsURL string
	httpClient     *http.Client
	logger         *zap.Logger
	available      atomic.Bool
}

// AzureOption configures an AzureClient.
type AzureOption func(*AzureClient)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) AzureOption {
	return func(c *AzureClient) { c.logger = l }
}

// NewAzureClient creates a client for the configured deployment. The API key
// and endpoint are required; other fields fall back to defaults.
func NewAzureClient(cfg AzureConfig, opts ...AzureOption) (*AzureClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("azure openai: API key is required")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("azure openai: endpoint is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.DeploymentName == "" {
		cfg.DeploymentName = DefaultDeployment
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultRetries
	}

	c := &AzureClient{
		cfg: cfg,
		completionsURL: fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			strings.TrimRight(cfg.Endpoint, "/"),
			url.PathEscape(cfg.DeploymentName),
			url.QueryEscape(cfg.APIVersion)),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Deployment returns the configured deployment name.
func (c *AzureClient) Deployment() string {
	return c.cfg.DeploymentName
}

// Available reports whether the service has answered at least one request.
func (c *AzureClient) Available() bool {
	return c.available.Load()
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	TopP             float64       `json:"top_p,omitempty"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Complete sends one chat completion request, retrying rate limits and
// server errors with linear backoff.
func (c *AzureClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.User})

	body, err := json.Marshal(chatRequest{
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        req.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryDelay * time.Duration(attempt)):
			}
			c.logger.Debug("retrying completion request", zap.Int("attempt", attempt))
		}

		resp, err := c.doRequest(ctx, body)
		if err != nil {
			lastErr = err
			if retryable(err) {
				continue
			}
			return "", err
		}

		c.available.Store(true)
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return "", ErrEmptyCompletion
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", lastErr
}

func (c *AzureClient) doRequest(ctx context.Context, body []byte) (*chatResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionsURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	return &parsed, nil
}

// retryable reports whether another attempt may succeed. Transport errors
// are retried unless the context ended; API errors carry their own flag.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Ping sends a minimal completion to verify the deployment responds. An
// empty completion still counts as a reachable service.
func (c *AzureClient) Ping(ctx context.Context) error {
	_, err := c.Complete(ctx, &CompletionRequest{
		User:        "Test",
		Temperature: 0.1,
		MaxTokens:   10,
	})
	if err != nil && !errors.Is(err, ErrEmptyCompletion) {
		return err
	}
	return nil
}

// TestConnection exercises the full answer path with a fixed probe question
// and reports the outcome.
func (c *AzureClient) TestConnection(ctx context.Context) ConnectionStatus {
	system, user := AnswerPrompts(connectionTestQuestion, connectionTestContext)
	response, err := c.Complete(ctx, &CompletionRequest{
		System:      system,
		User:        user,
		Temperature: 0.1,
		MaxTokens:   100,
		TopP:        AnswerTopP,
	})
	if err != nil && !errors.Is(err, ErrEmptyCompletion) {
		return ConnectionStatus{
			Status:  "error",
			Message: fmt.Sprintf("Azure OpenAI test failed: %v", err),
		}
	}
	if response == "" {
		response = "No response text"
	}
	return ConnectionStatus{
		Status:         "success",
		Message:        "Azure OpenAI API is working with RAG",
		ModelName:      c.cfg.DeploymentName,
		DeploymentName: c.cfg.DeploymentName,
		TestResponse:   response,
		Endpoint:       c.cfg.Endpoint,
		APIVersion:     c.cfg.APIVersion,
	}
}

// ServiceInfo reports the configured deployment. ModelName is set once the
// service has answered successfully.
func (c *AzureClient) ServiceInfo() ServiceInfo {
	info := ServiceInfo{
		Service:        "Azure OpenAI",
		ModelAvailable: c.available.Load(),
		DeploymentName: c.cfg.DeploymentName,
		Endpoint:       c.cfg.Endpoint,
		APIVersion:     c.cfg.APIVersion,
	}
	if info.ModelAvailable {
		info.ModelName = c.cfg.DeploymentName
	}
	return info
}
