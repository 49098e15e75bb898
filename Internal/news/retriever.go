package news

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fazecat/moodsy/Internal/geo"
	"github.com/fazecat/moodsy/Internal/types"
	"github.com/fazecat/moodsy/Internal/utils/logger"
)

// Source is the headline provider consumed by the Retriever.
type Source interface {
	TopHeadlinesByCountry(ctx context.Context, country string) ([]types.NewsArticle, error)
	TopHeadlinesByLanguage(ctx context.Context, language string) ([]types.NewsArticle, error)
	Everything(ctx context.Context, query string) ([]types.NewsArticle, error)
}

// Searcher is an optional credential-free search source appended as the
// lowest-priority candidate.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.NewsArticle, error)
}

// Retriever races the candidate fetches concurrently and ranks the settled
// results deterministically: country headlines beat language headlines
// beat full-text search beat RSS search. The first non-empty candidate in
// that order wins; a failed candidate counts as empty.
type Retriever struct {
	Source        Source
	RSS           Searcher // optional
	LangOverrides map[string]string
}

func NewRetriever(source Source, rss Searcher, langOverrides map[string]string) *Retriever {
	return &Retriever{
		Source:        source,
		RSS:           rss,
		LangOverrides: langOverrides,
	}
}

type candidate struct {
	name  string
	fetch func(ctx context.Context) ([]types.NewsArticle, error)
}

// FetchArticles returns the winning candidate's articles. code may be
// empty when the country was not resolved; rawQuery is always set. An
// empty result with a nil error means every candidate was empty or
// failed.
func (r *Retriever) FetchArticles(ctx context.Context, code, rawQuery string) ([]types.NewsArticle, error) {
	candidates := r.buildCandidates(code, rawQuery)

	results := make([][]types.NewsArticle, len(candidates))
	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c candidate) {
			defer wg.Done()
			articles, err := c.fetch(ctx)
			if err != nil {
				// A failed candidate ranks as empty, never fatal.
				logger.Warn("news candidate failed",
					zap.String("candidate", c.name),
					zap.Error(err),
				)
				return
			}
			results[i] = articles
		}(i, c)
	}
	wg.Wait()

	for i, articles := range results {
		if len(articles) > 0 {
			logger.Debug("news candidate won",
				zap.String("candidate", candidates[i].name),
				zap.Int("articles", len(articles)),
			)
			return articles, nil
		}
	}
	return []types.NewsArticle{}, nil
}

func (r *Retriever) buildCandidates(code, rawQuery string) []candidate {
	var candidates []candidate

	if code != "" {
		candidates = append(candidates, candidate{
			name: "country-headlines",
			fetch: func(ctx context.Context) ([]types.NewsArticle, error) {
				return r.Source.TopHeadlinesByCountry(ctx, code)
			},
		})
		if lang, ok := geo.Language(code, r.LangOverrides); ok {
			candidates = append(candidates, candidate{
				name: "language-headlines",
				fetch: func(ctx context.Context) ([]types.NewsArticle, error) {
					return r.Source.TopHeadlinesByLanguage(ctx, lang)
				},
			})
		}
	}

	candidates = append(candidates, candidate{
		name: "everything-search",
		fetch: func(ctx context.Context) ([]types.NewsArticle, error) {
			return r.Source.Everything(ctx, rawQuery)
		},
	})

	if r.RSS != nil {
		candidates = append(candidates, candidate{
			name: "google-news-rss",
			fetch: func(ctx context.Context) ([]types.NewsArticle, error) {
				return r.RSS.Search(ctx, rawQuery)
			},
		})
	}

	return candidates
}
