package mood

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fazecat/moodsy/Internal/geo"
	"github.com/fazecat/moodsy/Internal/types"
)

type stubResolver struct {
	code string
	err  error
}

func (s *stubResolver) ResolveCountry(ctx context.Context, name string) (string, error) {
	return s.code, s.err
}

type stubRetriever struct {
	gotCode  string
	gotQuery string
	articles []types.NewsArticle
	err      error
}

func (s *stubRetriever) FetchArticles(ctx context.Context, code, rawQuery string) ([]types.NewsArticle, error) {
	s.gotCode = code
	s.gotQuery = rawQuery
	return s.articles, s.err
}

type stubClassifier struct{}

func (s *stubClassifier) Classify(ctx context.Context, text string) types.Sentiment {
	if strings.Contains(text, "bad") {
		return types.SentimentNegative
	}
	return types.SentimentPositive
}

func TestService_PreservesRetrievalOrder(t *testing.T) {
	articles := []types.NewsArticle{
		{Title: "first", URL: "https://e.com/1"},
		{Title: "second bad", URL: "https://e.com/2"},
		{Title: "third", URL: "https://e.com/3"},
	}
	svc := NewService(
		&stubResolver{code: "jp"},
		&stubRetriever{articles: articles},
		&stubClassifier{},
		nil,
	)

	got, err := svc.Mood(context.Background(), "Japan")
	if err != nil {
		t.Fatalf("Mood returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	for i, want := range []string{"first", "second bad", "third"} {
		if got[i].Title != want {
			t.Errorf("result %d = %q, want %q", i, got[i].Title, want)
		}
	}
	if got[1].Sentiment != types.SentimentNegative {
		t.Errorf("expected negative sentiment on second article, got %q", got[1].Sentiment)
	}
}

func TestService_UnresolvedCountryStillRetrieves(t *testing.T) {
	retriever := &stubRetriever{articles: []types.NewsArticle{{Title: "hit", URL: "https://e.com/1"}}}
	svc := NewService(
		&stubResolver{err: geo.ErrUnresolved},
		retriever,
		&stubClassifier{},
		nil,
	)

	got, err := svc.Mood(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("unresolved country must not fail the request: %v", err)
	}
	if retriever.gotCode != "" {
		t.Errorf("retriever should receive an empty code, got %q", retriever.gotCode)
	}
	if retriever.gotQuery != "Atlantis" {
		t.Errorf("retriever should receive the raw query, got %q", retriever.gotQuery)
	}
	if len(got) != 1 {
		t.Errorf("expected the full-text result, got %d results", len(got))
	}
}

func TestService_RetrievalErrorIsFatal(t *testing.T) {
	svc := NewService(
		&stubResolver{code: "jp"},
		&stubRetriever{err: errors.New("total network failure")},
		&stubClassifier{},
		nil,
	)

	if _, err := svc.Mood(context.Background(), "Japan"); err == nil {
		t.Errorf("expected retrieval error to propagate")
	}
}

type failingStore struct{ called bool }

func (f *failingStore) SaveArticles(ctx context.Context, country string, articles []types.ArticleWithSentiment) error {
	f.called = true
	return errors.New("db down")
}

func TestService_StoreFailureIsAbsorbed(t *testing.T) {
	store := &failingStore{}
	svc := NewService(
		&stubResolver{code: "jp"},
		&stubRetriever{articles: []types.NewsArticle{{Title: "hit", URL: "https://e.com/1"}}},
		&stubClassifier{},
		store,
	)

	got, err := svc.Mood(context.Background(), "Japan")
	if err != nil {
		t.Fatalf("store failure must not fail the request: %v", err)
	}
	if !store.called {
		t.Errorf("store should have been invoked")
	}
	if len(got) != 1 {
		t.Errorf("expected 1 result, got %d", len(got))
	}
}
