package news

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mmcdole/gofeed"

	"github.com/fazecat/moodsy/Internal/types"
)

const googleNewsBaseURL = "https://news.google.com/rss/search"

// GoogleNews searches the Google News RSS feed. It needs no credential,
// which makes it the last-resort retrieval candidate.
type GoogleNews struct {
	BaseURL string
	Limit   int
	parser  *gofeed.Parser
}

func NewGoogleNews(limit int) *GoogleNews {
	return &GoogleNews{
		BaseURL: googleNewsBaseURL,
		Limit:   limit,
		parser:  gofeed.NewParser(),
	}
}

func (g *GoogleNews) Search(ctx context.Context, query string) ([]types.NewsArticle, error) {
	u := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", g.BaseURL, url.QueryEscape(query))

	feed, err := g.parser.ParseURLWithContext(u, ctx)
	if err != nil {
		return nil, fmt.Errorf("google news rss failed: %w", err)
	}

	articles := make([]types.NewsArticle, 0, g.Limit)
	for _, item := range feed.Items {
		if len(articles) >= g.Limit {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		var desc *string
		if item.Description != "" {
			d := item.Description
			desc = &d
		}
		articles = append(articles, types.NewsArticle{
			Title:       item.Title,
			Description: desc,
			URL:         item.Link,
			PublishedAt: item.Published,
		})
	}
	return articles, nil
}
