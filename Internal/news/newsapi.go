package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fazecat/moodsy/Internal/types"
)

const defaultBaseURL = "https://newsapi.org/v2"

// Client is a thin NewsAPI client covering the three operations the
// retriever needs. BaseURL is overridable for tests.
type Client struct {
	APIKey     string
	BaseURL    string
	PageSize   int
	HTTPClient *http.Client
}

func NewClient(apiKey string, pageSize int, timeout time.Duration) *Client {
	return &Client{
		APIKey:   apiKey,
		BaseURL:  defaultBaseURL,
		PageSize: pageSize,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type apiArticle struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
}

type apiResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
}

// TopHeadlinesByCountry fetches top headlines for a 2-letter country code.
func (c *Client) TopHeadlinesByCountry(ctx context.Context, country string) ([]types.NewsArticle, error) {
	params := url.Values{}
	params.Set("country", country)
	return c.fetch(ctx, "/top-headlines", params)
}

// TopHeadlinesByLanguage fetches top headlines filtered by language.
func (c *Client) TopHeadlinesByLanguage(ctx context.Context, language string) ([]types.NewsArticle, error) {
	params := url.Values{}
	params.Set("language", language)
	return c.fetch(ctx, "/top-headlines", params)
}

// Everything runs a full-text search over all indexed articles.
func (c *Client) Everything(ctx context.Context, query string) ([]types.NewsArticle, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.fetch(ctx, "/everything", params)
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]types.NewsArticle, error) {
	params.Set("pageSize", strconv.Itoa(c.PageSize))
	params.Set("apiKey", c.APIKey)

	fullURL := c.BaseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned status %d", resp.StatusCode)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode newsapi response: %w", err)
	}
	if decoded.Status != "ok" {
		return nil, fmt.Errorf("newsapi error status %q", decoded.Status)
	}

	articles := make([]types.NewsArticle, 0, len(decoded.Articles))
	for _, a := range decoded.Articles {
		articles = append(articles, types.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
