package types

import "strings"

// Sentiment is the 3-way label attached to every classified article.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// NewsArticle is the normalized article shape served to clients.
// Description and ImageURL are nullable in provider payloads.
type NewsArticle struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	PublishedAt string  `json:"publishedAt,omitempty"`
}

type ArticleWithSentiment struct {
	NewsArticle
	Sentiment Sentiment `json:"sentiment"`
}

// SentimentLog is one saved dashboard entry for an authenticated user.
type SentimentLog struct {
	ID                 int64     `json:"id"`
	UserID             string    `json:"user"`
	CountryCode        string    `json:"country_code"`
	ArticleTitle       string    `json:"article_title"`
	ArticleDescription *string   `json:"article_description"`
	ArticleURL         string    `json:"article_url"`
	Sentiment          Sentiment `json:"sentiment"`
	CreatedAt          string    `json:"created_at"`
}

// ClassifyText is the canonical text-extraction rule used both for
// classification requests and as the sentiment cache key: title plus
// description when present, trimmed. Keep this in one place so the cache
// key and the classified text can never drift apart.
func ClassifyText(a NewsArticle) string {
	text := a.Title
	if a.Description != nil && *a.Description != "" {
		text += " " + *a.Description
	}
	return strings.TrimSpace(text)
}
