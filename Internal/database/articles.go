package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/fazecat/moodsy/Internal/types"
	"github.com/fazecat/moodsy/Internal/utils/logger"
)

// ArticleStore persists classified articles, keyed by URL so repeated
// requests do not duplicate rows.
type ArticleStore struct {
	db *sql.DB
}

func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// SaveArticles upserts classified articles. Individual row failures are
// logged and skipped; persistence is best effort.
func (s *ArticleStore) SaveArticles(ctx context.Context, country string, articles []types.ArticleWithSentiment) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO news_articles (
			title, description, url, image_url, published_at, sentiment, country
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		ON CONFLICT (url) DO UPDATE SET sentiment = EXCLUDED.sentiment
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, a := range articles {
		_, err := stmt.ExecContext(ctx,
			a.Title,
			a.Description,
			a.URL,
			a.ImageURL,
			a.PublishedAt,
			string(a.Sentiment),
			country,
		)
		if err != nil {
			logger.Warn("failed to save article",
				zap.String("url", a.URL),
				zap.Error(err),
			)
			continue
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	logger.Debug("saved articles",
		zap.Int("total", len(articles)),
		zap.Int("saved", saved),
	)
	return nil
}

// RecentArticles returns the newest stored articles, optionally filtered
// by country or language.
func (s *ArticleStore) RecentArticles(ctx context.Context, country, language string, limit int) ([]types.ArticleWithSentiment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, description, url, image_url, published_at, sentiment
		FROM news_articles
		WHERE ($1 = '' OR country = $1)
		  AND ($2 = '' OR language = $2)
		ORDER BY published_at DESC NULLS LAST, id DESC
		LIMIT $3
	`, country, language, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	articles := make([]types.ArticleWithSentiment, 0, limit)
	for rows.Next() {
		var a types.ArticleWithSentiment
		var published sql.NullString
		var sentiment string
		if err := rows.Scan(&a.Title, &a.Description, &a.URL, &a.ImageURL, &published, &sentiment); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		a.PublishedAt = published.String
		a.Sentiment = types.Sentiment(sentiment)
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
