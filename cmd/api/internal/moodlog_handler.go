package internal

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/fazecat/moodsy/Internal/types"
	"github.com/fazecat/moodsy/Internal/utils/logger"
)

type logSentimentRequest struct {
	CountryCode        string  `json:"country_code"`
	ArticleTitle       string  `json:"article_title"`
	ArticleDescription *string `json:"article_description"`
	ArticleURL         string  `json:"article_url"`
	Sentiment          string  `json:"sentiment"`
}

func validSentiment(s string) bool {
	switch types.Sentiment(s) {
	case types.SentimentPositive, types.SentimentNeutral, types.SentimentNegative:
		return true
	}
	return false
}

// HandleLogSentiment saves one dashboard entry for the authenticated
// user. The JWT middleware has already populated X-User-ID.
func (api *API) HandleLogSentiment(w http.ResponseWriter, r *http.Request) {
	if api.MoodLogs == nil {
		WriteError(w, http.StatusServiceUnavailable, "Database is not configured")
		return
	}

	var req logSentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.CountryCode = strings.ToLower(strings.TrimSpace(req.CountryCode))
	req.ArticleTitle = strings.TrimSpace(req.ArticleTitle)
	req.ArticleURL = strings.TrimSpace(req.ArticleURL)

	if req.CountryCode == "" || req.ArticleTitle == "" || req.ArticleURL == "" {
		WriteError(w, http.StatusBadRequest, "country_code, article_title and article_url are required")
		return
	}
	if !validSentiment(req.Sentiment) {
		WriteError(w, http.StatusBadRequest, "sentiment must be positive, neutral or negative")
		return
	}

	entry := types.SentimentLog{
		UserID:             r.Header.Get("X-User-ID"),
		CountryCode:        req.CountryCode,
		ArticleTitle:       req.ArticleTitle,
		ArticleDescription: req.ArticleDescription,
		ArticleURL:         req.ArticleURL,
		Sentiment:          types.Sentiment(req.Sentiment),
	}

	saved, err := api.MoodLogs.Insert(r.Context(), entry)
	if err != nil {
		logger.Error("failed to save sentiment log", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to save sentiment log")
		return
	}

	WriteJSON(w, http.StatusCreated, saved)
}

// HandleListSentimentLogs returns the authenticated user's saved entries,
// newest first.
func (api *API) HandleListSentimentLogs(w http.ResponseWriter, r *http.Request) {
	if api.MoodLogs == nil {
		WriteError(w, http.StatusServiceUnavailable, "Database is not configured")
		return
	}

	logs, err := api.MoodLogs.ListByUser(r.Context(), r.Header.Get("X-User-ID"), 50)
	if err != nil {
		logger.Error("failed to fetch sentiment logs", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to fetch sentiment logs")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"results": logs,
	})
}
