package api

import (
	"encoding/json"
	"net/http"
)

type OnboardingRequest struct {
	InvestorType       string   `json:"investor_type"`
	CryptoInterests    []string `json:"crypto_interests"`
	ContentPreferences []string `json:"content_preferences"`
}

// handleOnboarding stores the user's investment profile, which personalizes
// the insight feed.
func (s *Server) handleOnboarding() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := getUserID(r)

		var req OnboardingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		err := s.userStore.CompleteOnboarding(r.Context(), userID,
			req.InvestorType, req.CryptoInterests, req.ContentPreferences)
		if err != nil {
			s.logger.Error("onboarding failed", "user_id", userID, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to save profile")
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":              "Onboarding completed",
			"user_id":              userID,
			"onboarding_completed": true,
		})
	}
}
