package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultRedditURL is the authenticated Reddit API host.
const DefaultRedditURL = "https://oauth.reddit.com"

var sortModes = []string{"hot", "new", "rising"}

// MemeSource fetches posts from a subreddit listing using a bearer token
// obtained from the shared TokenCache.
type MemeSource struct {
	tokens    *TokenCache
	userAgent string
	baseURL   string
	client    *http.Client
	rand      Rand
}

// NewMemeSource creates a Reddit listing source.
func NewMemeSource(tokens *TokenCache, userAgent string, timeout time.Duration, rng Rand) *MemeSource {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &MemeSource{
		tokens:    tokens,
		userAgent: userAgent,
		baseURL:   DefaultRedditURL,
		client:    &http.Client{Timeout: timeout},
		rand:      rng,
	}
}

// Listing fetches up to 25 posts from the given subreddit. The sort mode is
// rotated at random between hot, new and rising so repeated calls surface
// different posts. A 401 triggers exactly one token refresh and retry.
func (s *MemeSource) Listing(ctx context.Context, subreddit string) ([]MemeCandidate, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	sort := sortModes[s.rand.Intn(len(sortModes))]
	url := fmt.Sprintf("%s/r/%s/%s.json?limit=25&raw_json=1", s.baseURL, subreddit, sort)

	body, status, err := s.get(ctx, url, token)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		s.tokens.Invalidate()
		if token, err = s.tokens.Token(ctx); err != nil {
			return nil, err
		}
		if body, status, err = s.get(ctx, url, token); err != nil {
			return nil, err
		}
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: r/%s returned %d", ErrSourceUnavailable, subreddit, status)
	}

	return parseListing(body, subreddit)
}

func (s *MemeSource) get(ctx context.Context, url, token string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: create request: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read response: %v", ErrSourceUnavailable, err)
	}
	return body, resp.StatusCode, nil
}

func parseListing(body []byte, subreddit string) ([]MemeCandidate, error) {
	var envelope struct {
		Data struct {
			Children []struct {
				Data struct {
					Title     string `json:"title"`
					URL       string `json:"url"`
					Permalink string `json:"permalink"`
					Score     int    `json:"score"`
					Subreddit string `json:"subreddit"`
					Author    string `json:"author"`
					IsVideo   bool   `json:"is_video"`
					PostHint  string `json:"post_hint"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceMalformed, err)
	}
	if envelope.Data.Children == nil {
		return nil, fmt.Errorf("%w: missing data.children", ErrSourceMalformed)
	}

	posts := make([]MemeCandidate, 0, len(envelope.Data.Children))
	for _, child := range envelope.Data.Children {
		d := child.Data
		c := MemeCandidate{
			Title:     d.Title,
			URL:       d.URL,
			Permalink: d.Permalink,
			Score:     d.Score,
			Subreddit: d.Subreddit,
			Author:    d.Author,
			IsVideo:   d.IsVideo,
			PostHint:  d.PostHint,
		}
		if c.Subreddit == "" {
			c.Subreddit = subreddit
		}
		if c.Author == "" {
			c.Author = "unknown"
		}
		posts = append(posts, c)
	}
	return posts, nil
}
