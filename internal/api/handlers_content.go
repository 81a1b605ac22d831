package api

import (
	"net/http"
	"strconv"

	"github.com/coinpulse/backend/internal/content"
	"github.com/coinpulse/backend/internal/insight"
)

// handleNews serves the aggregated news feed. The limit query parameter is
// clamped to the fixed maximum; the response is always a full article list.
func (s *Server) handleNews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := content.MaxNewsItems
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				limit = n
			}
		}

		articles := s.contents.News(r.Context(), limit)
		respondJSON(w, http.StatusOK, articles)
	}
}

// handleMeme serves one randomly selected meme.
func (s *Server) handleMeme() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.contents.Meme(r.Context()))
	}
}

// handleInsight serves a personalized insight for the authenticated user.
func (s *Server) handleInsight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.userStore.GetByID(r.Context(), getUserID(r))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if u == nil {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}

		text := s.insights.Generate(r.Context(), insight.Profile{
			InvestorType:       u.InvestorType,
			CryptoInterests:    u.CryptoInterests,
			ContentPreferences: u.ContentPreferences,
		})

		respondJSON(w, http.StatusOK, map[string]string{"insight": text})
	}
}
