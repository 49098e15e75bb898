package mood

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/fazecat/moodsy/Internal/types"
	"github.com/fazecat/moodsy/Internal/utils/logger"
)

// Resolver, Retriever and Classifier are the three pipeline stages. The
// service owns orchestration only; each stage's error policy lives in its
// own package.
type Resolver interface {
	ResolveCountry(ctx context.Context, name string) (string, error)
}

type Retriever interface {
	FetchArticles(ctx context.Context, code, rawQuery string) ([]types.NewsArticle, error)
}

type Classifier interface {
	Classify(ctx context.Context, text string) types.Sentiment
}

// ArticleStore persists classified articles. Optional.
type ArticleStore interface {
	SaveArticles(ctx context.Context, country string, articles []types.ArticleWithSentiment) error
}

type Service struct {
	Resolver   Resolver
	Retriever  Retriever
	Classifier Classifier
	Store      ArticleStore // nil when no database is configured
}

func NewService(resolver Resolver, retriever Retriever, classifier Classifier, store ArticleStore) *Service {
	return &Service{
		Resolver:   resolver,
		Retriever:  retriever,
		Classifier: classifier,
		Store:      store,
	}
}

// Mood runs resolve -> retrieve -> classify for one country query.
// An unresolved country is not an error: retrieval falls back to
// full-text search. A retrieval error is the one fatal path.
func (s *Service) Mood(ctx context.Context, countryQuery string) ([]types.ArticleWithSentiment, error) {
	code, err := s.Resolver.ResolveCountry(ctx, countryQuery)
	if err != nil {
		logger.Debug("country unresolved, using full-text fallback",
			zap.String("query", countryQuery),
		)
		code = ""
	}

	articles, err := s.Retriever.FetchArticles(ctx, code, countryQuery)
	if err != nil {
		return nil, fmt.Errorf("news retrieval failed: %w", err)
	}

	// Classify concurrently; indexed writes keep output order equal to
	// retrieval order.
	results := make([]types.ArticleWithSentiment, len(articles))
	var wg sync.WaitGroup
	for i, a := range articles {
		wg.Add(1)
		go func(i int, a types.NewsArticle) {
			defer wg.Done()
			results[i] = types.ArticleWithSentiment{
				NewsArticle: a,
				Sentiment:   s.Classifier.Classify(ctx, types.ClassifyText(a)),
			}
		}(i, a)
	}
	wg.Wait()

	if s.Store != nil && len(results) > 0 {
		if err := s.Store.SaveArticles(ctx, code, results); err != nil {
			logger.Warn("failed to persist classified articles", zap.Error(err))
		}
	}

	return results, nil
}
