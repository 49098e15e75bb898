package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/fazecat/moodsy/Internal/utils/config"
)

// Open connects to Postgres and ensures the schema exists.
func Open(cfg config.DatabaseEnv) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initializeSchema(db); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func initializeSchema(db *sql.DB) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS news_articles (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		url TEXT NOT NULL UNIQUE,
		image_url TEXT,
		published_at TEXT,
		sentiment TEXT NOT NULL,
		country TEXT,
		language TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sentiment_logs (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		country_code TEXT NOT NULL,
		article_title TEXT NOT NULL,
		article_description TEXT,
		article_url TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_news_articles_country ON news_articles(country);
	CREATE INDEX IF NOT EXISTS idx_sentiment_logs_user ON sentiment_logs(user_id);
	`

	_, err := db.Exec(schemaSQL)
	return err
}
