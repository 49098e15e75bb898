package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fazecat/moodsy/Internal/types"
)

func article(title string) types.NewsArticle {
	return types.NewsArticle{Title: title, URL: "https://example.com/" + title}
}

type stubSource struct {
	country       []types.NewsArticle
	language      []types.NewsArticle
	everything    []types.NewsArticle
	countryErr    error
	languageErr   error
	everythingErr error
}

func (s *stubSource) TopHeadlinesByCountry(ctx context.Context, country string) ([]types.NewsArticle, error) {
	return s.country, s.countryErr
}

func (s *stubSource) TopHeadlinesByLanguage(ctx context.Context, language string) ([]types.NewsArticle, error) {
	return s.language, s.languageErr
}

func (s *stubSource) Everything(ctx context.Context, query string) ([]types.NewsArticle, error) {
	return s.everything, s.everythingErr
}

func TestRetriever_CountryBeatsFullText(t *testing.T) {
	src := &stubSource{
		country:    []types.NewsArticle{article("country-hit")},
		everything: []types.NewsArticle{article("search-hit")},
	}
	r := NewRetriever(src, nil, nil)

	got, err := r.FetchArticles(context.Background(), "jp", "Japan")
	if err != nil {
		t.Fatalf("FetchArticles returned error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "country-hit" {
		t.Errorf("expected country headlines to win, got %+v", got)
	}
}

func TestRetriever_FallsBackToFullText(t *testing.T) {
	src := &stubSource{
		everything: []types.NewsArticle{article("search-hit")},
	}
	r := NewRetriever(src, nil, nil)

	got, err := r.FetchArticles(context.Background(), "jp", "Japan")
	if err != nil {
		t.Fatalf("FetchArticles returned error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "search-hit" {
		t.Errorf("expected full-text search to win, got %+v", got)
	}
}

func TestRetriever_LanguageBeatsFullText(t *testing.T) {
	src := &stubSource{
		language:   []types.NewsArticle{article("language-hit")},
		everything: []types.NewsArticle{article("search-hit")},
	}
	r := NewRetriever(src, nil, nil)

	got, err := r.FetchArticles(context.Background(), "jp", "Japan")
	if err != nil {
		t.Fatalf("FetchArticles returned error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "language-hit" {
		t.Errorf("expected language headlines to win, got %+v", got)
	}
}

func TestRetriever_UnresolvedCodeUsesFullTextOnly(t *testing.T) {
	src := &stubSource{
		country:    []types.NewsArticle{article("country-hit")},
		everything: []types.NewsArticle{article("search-hit")},
	}
	r := NewRetriever(src, nil, nil)

	got, err := r.FetchArticles(context.Background(), "", "Atlantis")
	if err != nil {
		t.Fatalf("FetchArticles returned error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "search-hit" {
		t.Errorf("expected full-text candidate without a code, got %+v", got)
	}
}

func TestRetriever_FailedCandidateRanksAsEmpty(t *testing.T) {
	src := &stubSource{
		countryErr: errors.New("boom"),
		everything: []types.NewsArticle{article("search-hit")},
	}
	r := NewRetriever(src, nil, nil)

	got, err := r.FetchArticles(context.Background(), "jp", "Japan")
	if err != nil {
		t.Fatalf("FetchArticles returned error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "search-hit" {
		t.Errorf("expected fallback past the failed candidate, got %+v", got)
	}
}

func TestRetriever_AllCandidatesFail(t *testing.T) {
	src := &stubSource{
		countryErr:    errors.New("boom"),
		languageErr:   errors.New("boom"),
		everythingErr: errors.New("boom"),
	}
	r := NewRetriever(src, nil, nil)

	got, err := r.FetchArticles(context.Background(), "jp", "Japan")
	if err != nil {
		t.Fatalf("FetchArticles should absorb candidate failures, got error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %+v", got)
	}
}

func TestClient_MapsArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("country") != "jp" {
			t.Errorf("expected country=jp, got %q", r.URL.Query().Get("country"))
		}
		if r.URL.Query().Get("pageSize") != "3" {
			t.Errorf("expected pageSize=3, got %q", r.URL.Query().Get("pageSize"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       "ok",
			"totalResults": 1,
			"articles": []map[string]interface{}{
				{
					"title":       "Headline",
					"description": nil,
					"url":         "https://example.com/a",
					"urlToImage":  "https://example.com/a.png",
					"publishedAt": "2025-05-01T10:00:00Z",
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("key", 3, 2*time.Second)
	c.BaseURL = srv.URL

	got, err := c.TopHeadlinesByCountry(context.Background(), "jp")
	if err != nil {
		t.Fatalf("TopHeadlinesByCountry returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	a := got[0]
	if a.Title != "Headline" || a.URL != "https://example.com/a" {
		t.Errorf("unexpected mapping: %+v", a)
	}
	if a.Description != nil {
		t.Errorf("null description should stay nil, got %q", *a.Description)
	}
	if a.ImageURL == nil || *a.ImageURL != "https://example.com/a.png" {
		t.Errorf("unexpected imageUrl mapping: %+v", a.ImageURL)
	}
}

func TestClient_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("key", 3, 2*time.Second)
	c.BaseURL = srv.URL

	if _, err := c.Everything(context.Background(), "Japan"); err == nil {
		t.Errorf("expected error for non-200 response")
	}
}
