// Package llm provides a chat-completion client for OpenAI-compatible APIs.
// The backend talks to OpenRouter by default, with automatic retries on
// transient failures.
package llm

import (
	"context"
	"fmt"
	"time"
)

// Config holds configuration for the completion client.
type Config struct {
	Model       string        `yaml:"model" json:"model" env:"LLM_MODEL"`
	APIKey      string        `yaml:"api_key" json:"api_key" env:"OPENROUTER_API_KEY"`
	BaseURL     string        `yaml:"base_url" json:"base_url" env:"LLM_BASE_URL"`
	MaxRetries  int           `yaml:"max_retries" json:"max_retries"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens"`
	Temperature float64       `yaml:"temperature" json:"temperature"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Model:       "deepseek/deepseek-chat",
		MaxRetries:  2,
		Timeout:     10 * time.Second,
		MaxTokens:   100,
		Temperature: 0.7,
	}
}

// Client is the interface for completion requests.
type Client interface {
	// Generate sends a prompt and returns the completion.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Close releases any resources held by the client.
	Close() error
}

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Request holds the parameters for a completion request.
type Request struct {
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Response holds the result of a completion.
type Response struct {
	Content   string `json:"content"`
	TokensIn  int    `json:"tokens_in"`
	TokensOut int    `json:"tokens_out"`
	Model     string `json:"model"`
	LatencyMs int64  `json:"latency_ms"`
}

// NewClient creates a completion client from the given config.
func NewClient(cfg Config) (Client, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("completion API key is required")
	}
	return wrapWithRetry(newOpenRouterClient(cfg), cfg.MaxRetries), nil
}
