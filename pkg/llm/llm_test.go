package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewClient_MissingAPIKey(t *testing.T) {
	if _, err := NewClient(Config{Model: "deepseek/deepseek-chat"}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Model != "deepseek/deepseek-chat" {
		t.Fatalf("expected deepseek/deepseek-chat, got %s", cfg.Model)
	}
	if cfg.MaxTokens != 100 {
		t.Fatalf("expected 100 max tokens, got %d", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.7 {
		t.Fatalf("expected temperature 0.7, got %f", cfg.Temperature)
	}
}

func TestGenerate_WireFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "deepseek/deepseek-chat" || req.MaxTokens != 100 || req.Temperature != 0.7 {
			t.Errorf("unexpected request: %+v", req)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "Buy low."}}],
			"usage": {"prompt_tokens": 42, "completion_tokens": 7}, "model": "deepseek/deepseek-chat"}`))
	}))
	defer srv.Close()

	client := newOpenRouterClient(Config{
		Model:       "deepseek/deepseek-chat",
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Timeout:     2 * time.Second,
		MaxTokens:   100,
		Temperature: 0.7,
	})

	resp, err := client.Generate(context.Background(), &Request{
		System:   "You are an advisor.",
		Messages: []Message{{Role: "user", Content: "insight please"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "Buy low." {
		t.Fatalf("expected completion content, got %q", resp.Content)
	}
	if resp.TokensIn != 42 || resp.TokensOut != 7 {
		t.Fatalf("unexpected usage: %+v", resp)
	}
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := newOpenRouterClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second})
	if _, err := client.Generate(context.Background(), &Request{}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestGenerate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error": {"message": "insufficient credits"}}`))
	}))
	defer srv.Close()

	client := newOpenRouterClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second})
	_, err := client.Generate(context.Background(), &Request{})
	if err == nil || !contains(err.Error(), "insufficient credits") {
		t.Fatalf("expected API error message, got %v", err)
	}
}

type mockClient struct {
	generateFn func(ctx context.Context, req *Request) (*Response, error)
}

func (m *mockClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	return m.generateFn(ctx, req)
}
func (m *mockClient) Close() error { return nil }

func TestRetryClient_NoRetryOnSuccess(t *testing.T) {
	calls := 0
	mock := &mockClient{generateFn: func(ctx context.Context, req *Request) (*Response, error) {
		calls++
		return &Response{Content: "hello"}, nil
	}}

	rc := wrapWithRetry(mock, 3)
	resp, err := rc.Generate(context.Background(), &Request{
		Messages: []Message{{Role: "user", Content: "test"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "hello" {
		t.Fatalf("expected 'hello', got %q", resp.Content)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestRetryClient_RetriesTransientErrors(t *testing.T) {
	var calls int32
	mock := &mockClient{generateFn: func(ctx context.Context, req *Request) (*Response, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("completion API error (503): overloaded")
		}
		return &Response{Content: "recovered"}, nil
	}}

	rc := wrapWithRetry(mock, 3)
	resp, err := rc.Generate(context.Background(), &Request{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "recovered" {
		t.Fatalf("expected recovery after retry, got %q", resp.Content)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestRetryClient_NoRetryOnPermanentError(t *testing.T) {
	calls := 0
	mock := &mockClient{generateFn: func(ctx context.Context, req *Request) (*Response, error) {
		calls++
		return nil, errors.New("completion API error (401): bad key")
	}}

	rc := wrapWithRetry(mock, 3)
	if _, err := rc.Generate(context.Background(), &Request{}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected no retry on auth failure, got %d calls", calls)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("completion API error (429): rate limited"), true},
		{errors.New("send request: dial tcp: i/o timeout"), true},
		{errors.New("read tcp: connection reset by peer"), true},
		{errors.New("completion API error (400): bad request"), false},
	}
	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Fatalf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
