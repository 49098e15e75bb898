package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fazecat/moodsy/Internal/database"
	"github.com/fazecat/moodsy/Internal/geo"
	"github.com/fazecat/moodsy/Internal/mood"
	"github.com/fazecat/moodsy/Internal/news"
	"github.com/fazecat/moodsy/Internal/sentiment"
	"github.com/fazecat/moodsy/Internal/utils/config"
	"github.com/fazecat/moodsy/Internal/utils/logger"
	"github.com/fazecat/moodsy/cmd/api/internal"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../../.env")

	env, err := config.LoadEnv()
	if err != nil {
		logger.Fatal("failed to load environment", zap.Error(err))
	}
	logger.Init(env.LogLevel)
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config.yaml", zap.Error(err))
	}

	apiServer := buildAPI(env, cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(internal.CorsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		internal.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    "healthy",
		})
	})

	// Mood pipeline
	r.Get("/mood", apiServer.HandleGetMood)

	// Raw and stored news
	r.Get("/api/news", apiServer.HandleGetNews)
	r.Get("/api/news/stored", apiServer.HandleGetStoredNews)

	// Per-user mood log, guarded by tokens from the external auth backend
	r.Group(func(r chi.Router) {
		r.Use(internal.JWTAuthMiddleware(apiServer.JWTManager))
		r.Post("/api/moodlog", apiServer.HandleLogSentiment)
		r.Get("/api/moodlog", apiServer.HandleListSentimentLogs)
	})

	addr := ":" + env.Port
	logger.Info("starting API server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildAPI(env *config.Env, cfg *config.Config) *internal.API {
	// Country resolution: static table first, completion fallback only
	// when a key is configured.
	var fallback geo.Resolver
	if cr := geo.NewCompletionResolver(env.OpenAIKey, cfg.Completion.Model); cr != nil {
		fallback = cr
		logger.Info("completion country fallback enabled")
	} else {
		logger.Warn("OPENAI_API_KEY not set, country resolution is static only")
	}
	resolver := geo.NewHybridResolver(fallback)

	newsClient := news.NewClient(env.NewsAPIKey, cfg.News.PageSize, cfg.Timeout())

	var rss news.Searcher
	if cfg.News.GoogleNewsRSS {
		rss = news.NewGoogleNews(cfg.News.PageSize)
	}
	retriever := news.NewRetriever(newsClient, rss, cfg.Languages)

	classifier := sentiment.NewClassifier(
		env.HuggingFaceKey,
		cfg.Sentiment.Model,
		cfg.Timeout(),
		sentiment.NewCache(),
	)

	apiServer := &internal.API{
		Env:           env,
		NewsClient:    newsClient,
		JWTManager:    internal.NewJWTManager(env.JWTSecret),
		LangOverrides: cfg.Languages,
	}

	// Persistence is optional: without DB config the pipeline still
	// serves /mood, only the stored/moodlog routes are disabled.
	var store mood.ArticleStore
	if env.Database.Enabled() {
		db, err := database.Open(env.Database)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		articles := database.NewArticleStore(db)
		apiServer.Articles = articles
		apiServer.MoodLogs = database.NewSentimentLogStore(db)
		store = articles
		logger.Info("database connected")
	} else {
		logger.Warn("DB_USER not set, persistence disabled")
	}

	apiServer.Mood = mood.NewService(resolver, retriever, classifier, store)
	return apiServer
}
