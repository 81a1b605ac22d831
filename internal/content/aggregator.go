package content

import (
	"context"
	"log/slog"
	"time"
)

// MaxNewsItems caps the news limit regardless of what the caller asks for.
const MaxNewsItems = 6

// NewsFetcher is the live news source dependency of the aggregator.
type NewsFetcher interface {
	Name() string
	Fetch(ctx context.Context, limit int) ([]ContentItem, error)
}

// MemeLister is the live social listing dependency of the aggregator.
type MemeLister interface {
	Listing(ctx context.Context, subreddit string) ([]MemeCandidate, error)
}

// Aggregator runs the fallback ladder: live sources in priority order, then
// canned data. Every source attempt is independently recovered, so it always
// produces a well-formed result and never returns an error to handlers.
type Aggregator struct {
	news       NewsFetcher
	memes      MemeLister
	subreddits []string
	filter     *MemeFilter
	rand       Rand
	now        Clock
	logger     *slog.Logger
}

// NewAggregator wires the pipeline together.
func NewAggregator(news NewsFetcher, memes MemeLister, subreddits []string, filter *MemeFilter, rng Rand) *Aggregator {
	if len(subreddits) == 0 {
		subreddits = []string{"CryptoCurrencyMemes", "CryptoMemes"}
	}
	return &Aggregator{
		news:       news,
		memes:      memes,
		subreddits: subreddits,
		filter:     filter,
		rand:       rng,
		now:        time.Now,
		logger:     slog.Default(),
	}
}

// News returns up to limit articles in source order, clamped to MaxNewsItems.
// A failing or empty live source degrades to the static set.
func (a *Aggregator) News(ctx context.Context, limit int) []NewsItem {
	if limit <= 0 || limit > MaxNewsItems {
		limit = MaxNewsItems
	}

	items, err := a.news.Fetch(ctx, limit)
	if err != nil {
		a.logger.Warn("news source failed", "source", a.news.Name(), "error", err)
	} else if len(items) == 0 {
		a.logger.Warn("news source returned no items", "source", a.news.Name())
	} else {
		if len(items) > limit {
			items = items[:limit]
		}
		return FormatNews(items, a.now)
	}

	fallback := fallbackNews()
	if len(fallback) > limit {
		fallback = fallback[:limit]
	}
	return FormatNews(fallback, a.now)
}

// Meme aggregates eligible candidates across all configured subreddits and
// picks one uniformly at random. One subreddit's failure never aborts the
// others; an empty pool degrades to the static set.
func (a *Aggregator) Meme(ctx context.Context) Meme {
	var pool []MemeCandidate
	for _, sub := range a.subreddits {
		posts, err := a.memes.Listing(ctx, sub)
		if err != nil {
			a.logger.Warn("subreddit fetch failed", "subreddit", sub, "error", err)
			continue
		}
		for _, p := range posts {
			if a.filter.Eligible(p) {
				pool = append(pool, p)
			}
		}
	}

	picked, err := pickRandom(pool, a.rand)
	if err != nil {
		a.logger.Warn("meme pool empty, using static fallback")
		return fallbackMemes()[a.rand.Intn(len(fallbackMemes()))]
	}
	return FormatMeme(picked)
}

// pickRandom selects one candidate uniformly from the pool.
func pickRandom(pool []MemeCandidate, rng Rand) (MemeCandidate, error) {
	if len(pool) == 0 {
		return MemeCandidate{}, ErrEmptyPool
	}
	return pool[rng.Intn(len(pool))], nil
}
