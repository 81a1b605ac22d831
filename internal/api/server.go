// Package api provides the REST API server for the CoinPulse backend.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coinpulse/backend/internal/content"
	"github.com/coinpulse/backend/internal/feedback"
	"github.com/coinpulse/backend/internal/insight"
	"github.com/coinpulse/backend/internal/user"
)

// ContentProvider serves the aggregated news and meme feeds. It never fails;
// degraded upstreams yield static data.
type ContentProvider interface {
	News(ctx context.Context, limit int) []content.NewsItem
	Meme(ctx context.Context) content.Meme
}

// InsightProvider generates a personalized insight for a profile.
type InsightProvider interface {
	Generate(ctx context.Context, p insight.Profile) string
}

// Server holds the dependencies for the API.
type Server struct {
	userStore     *user.Store
	feedbackStore *feedback.Store
	contents      ContentProvider
	insights      InsightProvider
	jwtSecret     []byte
	logger        *slog.Logger
}

// NewServer creates a new API Server instance.
func NewServer(uStore *user.Store, fStore *feedback.Store, contents ContentProvider, insights InsightProvider, jwtSecret string) *Server {
	return &Server{
		userStore:     uStore,
		feedbackStore: fStore,
		contents:      contents,
		insights:      insights,
		jwtSecret:     []byte(jwtSecret),
		logger:        slog.Default(),
	}
}

// Routes returns the configured http.Handler for the API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Auth routes (public)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister())
	mux.HandleFunc("POST /api/auth/login", s.handleLogin())

	// Content feeds (public; the ladder guarantees a usable payload)
	mux.HandleFunc("GET /api/content/news", s.handleNews())
	mux.HandleFunc("GET /api/content/meme", s.handleMeme())

	// Profile-bound routes (require JWT)
	mux.Handle("GET /api/users/me", s.requireAuth(http.HandlerFunc(s.handleGetMe())))
	mux.Handle("POST /api/onboarding", s.requireAuth(http.HandlerFunc(s.handleOnboarding())))
	mux.Handle("GET /api/content/insight", s.requireAuth(http.HandlerFunc(s.handleInsight())))
	mux.Handle("POST /api/feedback", s.requireAuth(http.HandlerFunc(s.handleSectionFeedback())))
	mux.Handle("POST /api/feedback/articles", s.requireAuth(http.HandlerFunc(s.handleArticleFeedback())))
	mux.Handle("GET /api/feedback/articles", s.requireAuth(http.HandlerFunc(s.handleArticleVotes())))

	return mux
}

// --- Helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
