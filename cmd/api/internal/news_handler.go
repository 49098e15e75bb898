package internal

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fazecat/moodsy/Internal/geo"
	"github.com/fazecat/moodsy/Internal/types"
	"github.com/fazecat/moodsy/Internal/utils/logger"
)

// HandleGetNews serves raw headlines without sentiment. Fallback order
// mirrors the mood pipeline's ranking: country headlines, then the
// country's language, then full-text search on the country code.
func (api *API) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	country := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("country")))
	language := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("language")))

	if country == "" && language == "" {
		WriteError(w, http.StatusBadRequest, "Country or language code is required")
		return
	}
	if api.Env.NewsAPIKey == "" {
		WriteError(w, http.StatusInternalServerError, "Missing NEWS_API_KEY in environment")
		return
	}

	ctx := r.Context()
	var articles []types.NewsArticle
	var err error

	if country != "" {
		articles, err = api.NewsClient.TopHeadlinesByCountry(ctx, country)
	} else {
		articles, err = api.NewsClient.TopHeadlinesByLanguage(ctx, language)
	}
	if err != nil {
		logger.Warn("headline fetch failed", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "NewsAPI request failed")
		return
	}

	// Country gave nothing: try the country's headline language.
	if country != "" && len(articles) == 0 {
		if lang, ok := geo.Language(country, api.LangOverrides); ok {
			articles, err = api.NewsClient.TopHeadlinesByLanguage(ctx, lang)
			if err != nil {
				logger.Warn("language fallback failed", zap.Error(err))
			}
		}
	}

	// Still nothing: full-text search on the raw country value.
	if country != "" && len(articles) == 0 {
		if fallback, ferr := api.NewsClient.Everything(ctx, country); ferr != nil {
			logger.Warn("full-text fallback failed", zap.Error(ferr))
		} else {
			articles = fallback
		}
	}

	if articles == nil {
		articles = []types.NewsArticle{}
	}
	WriteJSON(w, http.StatusOK, articles)
}

// HandleGetStoredNews serves the most recently persisted articles.
func (api *API) HandleGetStoredNews(w http.ResponseWriter, r *http.Request) {
	if api.Articles == nil {
		WriteError(w, http.StatusServiceUnavailable, "Database is not configured")
		return
	}

	country := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("country")))
	language := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("language")))

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	articles, err := api.Articles.RecentArticles(r.Context(), country, language, limit)
	if err != nil {
		logger.Error("failed to fetch stored articles", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to fetch stored news")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"results": articles,
	})
}
