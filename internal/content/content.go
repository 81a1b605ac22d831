// Package content implements the multi-source aggregation pipeline that
// backs the news, meme and insight feeds: source clients for the external
// APIs, eligibility filtering, randomized selection and the fallback ladder
// that degrades to canned data when every live source fails.
package content

import (
	"errors"
	"time"
)

// ContentItem is a normalized news record produced by a source client.
type ContentItem struct {
	ID          string
	Title       string
	URL         string
	PublishedAt string
	Source      string
}

// MemeCandidate is a raw social post considered for the meme feed.
// Candidates live for a single request and are discarded after selection.
type MemeCandidate struct {
	Title     string
	URL       string
	Permalink string
	Score     int
	Subreddit string
	Author    string
	IsVideo   bool
	PostHint  string
}

// NewsItem is the external response shape for one news article.
type NewsItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Time   string `json:"time"`
	Source string `json:"source"`
}

// Meme is the external response shape for the meme endpoint.
type Meme struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Alt       string `json:"alt"`
	Source    string `json:"source"`
	Author    string `json:"author"`
	Score     int    `json:"score"`
	RedditURL string `json:"reddit_url"`
}

// Error kinds recovered inside the fallback ladder. None of them surface to
// API callers; handlers always receive a usable payload.
var (
	ErrAuth              = errors.New("credential exchange failed")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrSourceMalformed   = errors.New("source returned malformed payload")
	ErrEmptyPool         = errors.New("no eligible candidates")
)

// Rand is the injected source of randomness used for meme selection and
// sort-mode rotation. math/rand's *Rand satisfies it; tests substitute a
// deterministic implementation.
type Rand interface {
	Intn(n int) int
}

// Clock returns the current time. Swapped out in tests that exercise token
// expiry and relative timestamps.
type Clock func() time.Time
