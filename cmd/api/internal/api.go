package internal

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/fazecat/moodsy/Internal/database"
	"github.com/fazecat/moodsy/Internal/news"
	"github.com/fazecat/moodsy/Internal/types"
	"github.com/fazecat/moodsy/Internal/utils/config"
	"github.com/fazecat/moodsy/Internal/utils/logger"
)

// MoodService is the pipeline behind GET /mood.
type MoodService interface {
	Mood(ctx context.Context, countryQuery string) ([]types.ArticleWithSentiment, error)
}

type API struct {
	Env        *config.Env
	Mood       MoodService
	NewsClient *news.Client
	JWTManager *JWTManager

	// nil when no database is configured
	Articles *database.ArticleStore
	MoodLogs *database.SentimentLogStore

	LangOverrides map[string]string
}

// HandleGetMood serves the aggregated mood pipeline: validate input,
// check credentials, resolve/retrieve/classify, respond.
func (api *API) HandleGetMood(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	if country == "" {
		WriteError(w, http.StatusBadRequest, "Country parameter is required")
		return
	}

	if api.Env.NewsAPIKey == "" {
		WriteError(w, http.StatusInternalServerError, "Missing NEWS_API_KEY in environment")
		return
	}
	if api.Env.HuggingFaceKey == "" {
		WriteError(w, http.StatusInternalServerError, "Missing HUGGINGFACE_API_KEY in environment")
		return
	}

	results, err := api.Mood.Mood(r.Context(), country)
	if err != nil {
		logger.Error("mood pipeline failed",
			zap.String("country", country),
			zap.Error(err),
		)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch news")
		return
	}

	WriteJSON(w, http.StatusOK, results)
}
