// Package insight generates a personalized one-line investment insight from
// a user's onboarding profile, degrading to a static table when the
// completion API is unavailable.
package insight

import (
	"context"
	"log/slog"
	"strings"

	"github.com/coinpulse/backend/pkg/llm"
)

const systemPrompt = "You are a helpful crypto investment advisor. Provide concise, actionable insights in 1-2 sentences. Be professional but approachable."

// Profile carries the user attributes the prompt is built from. The
// generator never mutates it.
type Profile struct {
	InvestorType       string
	CryptoInterests    []string
	ContentPreferences []string
}

// Rand is the injected randomness used to pick a fallback insight.
type Rand interface {
	Intn(n int) int
}

// Generator produces insights. Generate never fails outward.
type Generator struct {
	client llm.Client
	rand   Rand
	logger *slog.Logger
}

// NewGenerator creates a generator backed by the given completion client.
// A nil client is allowed and always uses the static table.
func NewGenerator(client llm.Client, rng Rand) *Generator {
	return &Generator{
		client: client,
		rand:   rng,
		logger: slog.Default(),
	}
}

// Generate returns a single insight sentence for the profile. Any failure of
// the completion API (transport, auth, malformed or empty response) falls
// back to a canned insight for the user's investor-type bucket.
func (g *Generator) Generate(ctx context.Context, p Profile) string {
	if g.client == nil {
		return g.fallback(p)
	}

	resp, err := g.client.Generate(ctx, &llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: BuildPrompt(p)},
		},
		MaxTokens:   100,
		Temperature: 0.7,
	})
	if err != nil {
		g.logger.Warn("completion API failed", "error", err)
		return g.fallback(p)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		g.logger.Warn("completion API returned empty content")
		return g.fallback(p)
	}
	return text
}

// BuildPrompt concatenates the profile attributes into the user prompt.
func BuildPrompt(p Profile) string {
	var b strings.Builder
	b.WriteString("Generate a brief crypto investment insight for a ")

	if p.InvestorType != "" {
		b.WriteString(strings.ToLower(p.InvestorType))
	} else {
		b.WriteString("crypto investor")
	}

	if len(p.CryptoInterests) > 0 {
		b.WriteString(" interested in ")
		b.WriteString(strings.Join(p.CryptoInterests, ", "))
	}

	if len(p.ContentPreferences) > 0 {
		b.WriteString(". They prefer ")
		b.WriteString(strings.ToLower(strings.Join(p.ContentPreferences, ", ")))
		b.WriteString(" content")
	}

	b.WriteString(". Provide a relevant insight about current market conditions or opportunities.")
	return b.String()
}

func (g *Generator) fallback(p Profile) string {
	bucket := fallbackBucket(p.InvestorType)
	return bucket[g.rand.Intn(len(bucket))]
}
