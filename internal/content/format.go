package content

import (
	"fmt"
	"time"
)

// FormatNews maps normalized articles to the external response shape,
// humanizing the published timestamp where it parses.
func FormatNews(items []ContentItem, now Clock) []NewsItem {
	out := make([]NewsItem, 0, len(items))
	for _, it := range items {
		out = append(out, NewsItem{
			ID:     it.ID,
			Title:  it.Title,
			URL:    it.URL,
			Time:   relativeTime(it.PublishedAt, now()),
			Source: it.Source,
		})
	}
	return out
}

// FormatMeme maps a selected candidate to the external response shape,
// synthesizing the alt text and the reddit permalink.
func FormatMeme(c MemeCandidate) Meme {
	return Meme{
		URL:       c.URL,
		Title:     c.Title,
		Alt:       "Crypto meme: " + c.Title,
		Source:    "r/" + c.Subreddit,
		Author:    "u/" + c.Author,
		Score:     c.Score,
		RedditURL: "https://reddit.com" + c.Permalink,
	}
}

// relativeTime renders an RFC3339 timestamp as a human-readable relative
// string. Unparseable input is passed through untouched so raw display
// strings from fallback data survive formatting.
func relativeTime(timestamp string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	default:
		return plural(int(diff.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
