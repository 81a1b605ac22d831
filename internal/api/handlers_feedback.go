package api

import (
	"encoding/json"
	"net/http"
)

type SectionFeedbackRequest struct {
	Section string `json:"section"`
	Vote    string `json:"vote"`
}

func (s *Server) handleSectionFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := getUserID(r)

		var req SectionFeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Section == "" || req.Vote == "" {
			respondError(w, http.StatusBadRequest, "Section and vote are required")
			return
		}

		if err := s.feedbackStore.SaveSectionVote(r.Context(), userID, req.Section, req.Vote); err != nil {
			s.logger.Error("failed to save feedback", "user_id", userID, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to record feedback")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Feedback recorded"})
	}
}

type ArticleFeedbackRequest struct {
	ArticleID string `json:"article_id"`
	Vote      string `json:"vote"` // "up" or "down"
}

func (s *Server) handleArticleFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := getUserID(r)

		var req ArticleFeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.ArticleID == "" || req.Vote == "" {
			respondError(w, http.StatusBadRequest, "Article ID and vote are required")
			return
		}

		if err := s.feedbackStore.SaveArticleVote(r.Context(), userID, req.ArticleID, req.Vote); err != nil {
			s.logger.Error("failed to save article vote", "user_id", userID, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to record feedback")
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Article feedback recorded",
			"article_id": req.ArticleID,
			"vote":       req.Vote,
		})
	}
}

func (s *Server) handleArticleVotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		votes, err := s.feedbackStore.ArticleVotes(r.Context(), getUserID(r))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		respondJSON(w, http.StatusOK, votes)
	}
}
