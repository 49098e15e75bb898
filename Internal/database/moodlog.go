package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fazecat/moodsy/Internal/types"
)

// SentimentLogStore persists per-user dashboard log entries.
type SentimentLogStore struct {
	db *sql.DB
}

func NewSentimentLogStore(db *sql.DB) *SentimentLogStore {
	return &SentimentLogStore{db: db}
}

func (s *SentimentLogStore) Insert(ctx context.Context, entry types.SentimentLog) (types.SentimentLog, error) {
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sentiment_logs (
			user_id, country_code, article_title, article_description, article_url, sentiment
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		entry.UserID,
		entry.CountryCode,
		entry.ArticleTitle,
		entry.ArticleDescription,
		entry.ArticleURL,
		string(entry.Sentiment),
	).Scan(&entry.ID, &createdAt)
	if err != nil {
		return types.SentimentLog{}, fmt.Errorf("failed to insert sentiment log: %w", err)
	}
	entry.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return entry, nil
}

func (s *SentimentLogStore) ListByUser(ctx context.Context, userID string, limit int) ([]types.SentimentLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, country_code, article_title, article_description,
		       article_url, sentiment, created_at
		FROM sentiment_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiment logs: %w", err)
	}
	defer rows.Close()

	logs := make([]types.SentimentLog, 0, limit)
	for rows.Next() {
		var entry types.SentimentLog
		var sentiment string
		var createdAt time.Time
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.CountryCode,
			&entry.ArticleTitle,
			&entry.ArticleDescription,
			&entry.ArticleURL,
			&sentiment,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment log: %w", err)
		}
		entry.Sentiment = types.Sentiment(sentiment)
		entry.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
