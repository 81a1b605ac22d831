package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultNewsURL is the CryptoPanic developer posts endpoint.
const DefaultNewsURL = "https://cryptopanic.com/api/developer/v2/posts/"

// NewsSource fetches crypto news articles from CryptoPanic.
type NewsSource struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewNewsSource creates a CryptoPanic news source.
func NewNewsSource(apiKey string, timeout time.Duration) *NewsSource {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &NewsSource{
		apiKey:  apiKey,
		baseURL: DefaultNewsURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *NewsSource) Name() string { return "cryptopanic" }

// Fetch retrieves up to limit news articles. Records without a title are
// skipped rather than failing the batch.
func (s *NewsSource) Fetch(ctx context.Context, limit int) ([]ContentItem, error) {
	q := url.Values{}
	q.Set("auth_token", s.apiKey)
	q.Set("public", "true")
	q.Set("kind", "news")
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrSourceUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: cryptopanic returned %d", ErrSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrSourceUnavailable, err)
	}

	var envelope struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceMalformed, err)
	}
	if envelope.Results == nil {
		return nil, fmt.Errorf("%w: missing results array", ErrSourceMalformed)
	}

	items := make([]ContentItem, 0, len(envelope.Results))
	for _, raw := range envelope.Results {
		var post struct {
			ID          json.Number `json:"id"`
			Title       string      `json:"title"`
			URL         string      `json:"url"`
			PublishedAt string      `json:"published_at"`
			Source      struct {
				Title string `json:"title"`
			} `json:"source"`
		}
		if err := json.Unmarshal(raw, &post); err != nil {
			continue
		}
		if post.Title == "" {
			continue
		}

		item := ContentItem{
			ID:          post.ID.String(),
			Title:       post.Title,
			URL:         post.URL,
			PublishedAt: post.PublishedAt,
			Source:      post.Source.Title,
		}
		if item.URL == "" {
			item.URL = "#"
		}
		if item.PublishedAt == "" {
			item.PublishedAt = "Unknown"
		}
		if item.Source == "" {
			item.Source = "Unknown"
		}
		items = append(items, item)
	}

	return items, nil
}
