package content

import (
	"net/url"
	"strings"
)

// FilterConfig holds the tunable thresholds for meme eligibility. The zero
// value is not usable; start from DefaultFilterConfig.
type FilterConfig struct {
	MinScore      int      `yaml:"min_score" env:"MEME_MIN_SCORE"`
	HighScore     int      `yaml:"high_score" env:"MEME_HIGH_SCORE"`
	MaxShortTitle int      `yaml:"max_short_title" env:"MEME_MAX_SHORT_TITLE"`
	Keywords      []string `yaml:"keywords"`
}

// DefaultFilterConfig returns the stock thresholds. They are deliberately
// permissive: a starved candidate pool forces static fallback, which is worse
// than the occasional borderline item.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinScore:      10,
		HighScore:     100,
		MaxShortTitle: 100,
		Keywords: []string{
			"meme", "hodl", "moon", "diamond hands", "paper hands",
			"ape", "rocket", "stonks", "buy the dip",
		},
	}
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

var imageHosts = []string{"i.redd.it", "i.imgur.com"}

// MemeFilter decides which fetched candidates qualify for presentation.
// Eligible is pure; the filter carries no per-request state.
type MemeFilter struct {
	cfg FilterConfig
}

// NewMemeFilter creates a filter with the given thresholds.
func NewMemeFilter(cfg FilterConfig) *MemeFilter {
	if cfg.MinScore <= 0 && cfg.HighScore <= 0 && cfg.MaxShortTitle <= 0 {
		cfg = DefaultFilterConfig()
	}
	return &MemeFilter{cfg: cfg}
}

// Eligible reports whether a candidate may be shown. Videos and low-score
// posts are never eligible regardless of other fields.
func (f *MemeFilter) Eligible(c MemeCandidate) bool {
	if c.URL == "" || c.Title == "" {
		return false
	}
	if c.Score < f.cfg.MinScore {
		return false
	}
	if c.IsVideo {
		return false
	}
	if !isImage(c) {
		return false
	}
	return f.onTopic(c)
}

func isImage(c MemeCandidate) bool {
	if c.PostHint == "image" {
		return true
	}
	lower := strings.ToLower(c.URL)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	if u, err := url.Parse(c.URL); err == nil {
		host := strings.ToLower(u.Host)
		for _, h := range imageHosts {
			if host == h {
				return true
			}
		}
	}
	return false
}

// onTopic is the permissive secondary heuristic: slang keyword in the title,
// short title, or high-confidence score.
func (f *MemeFilter) onTopic(c MemeCandidate) bool {
	lower := strings.ToLower(c.Title)
	for _, kw := range f.cfg.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if len(c.Title) < f.cfg.MaxShortTitle {
		return true
	}
	return c.Score > f.cfg.HighScore
}
