package sentiment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fazecat/moodsy/Internal/types"
)

func newTestClassifier(t *testing.T, handler http.HandlerFunc) (*Classifier, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClassifier("test-key", "test-model", 2*time.Second, NewCache())
	c.BaseURL = srv.URL
	return c, srv
}

func TestClassifier_CacheHitSkipsRemote(t *testing.T) {
	var calls int64
	c, _ := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		fmt.Fprint(w, `[{"label":"POSITIVE","score":0.99}]`)
	})

	first := c.Classify(context.Background(), "markets rally on good news")
	second := c.Classify(context.Background(), "markets rally on good news")

	if first != types.SentimentPositive || second != types.SentimentPositive {
		t.Errorf("expected positive twice, got %q then %q", first, second)
	}
	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Errorf("expected exactly 1 remote call, got %d", n)
	}
}

func TestClassifier_FailOpenOnNon200(t *testing.T) {
	var calls int64
	c, _ := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	got := c.Classify(context.Background(), "some headline")
	if got != types.SentimentNeutral {
		t.Errorf("expected neutral on failure, got %q", got)
	}
	if c.cache.Len() != 0 {
		t.Errorf("failed classification must not populate the cache")
	}

	// A later call retries instead of serving a cached failure.
	c.Classify(context.Background(), "some headline")
	if n := atomic.LoadInt64(&calls); n != 2 {
		t.Errorf("expected retry on second call, got %d remote calls", n)
	}
}

func TestClassifier_NestedResponseShape(t *testing.T) {
	c, _ := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[[{"label":"NEGATIVE","score":0.98}]]`)
	})

	if got := c.Classify(context.Background(), "grim headline"); got != types.SentimentNegative {
		t.Errorf("expected negative, got %q", got)
	}
}

func TestClassifier_EmptyTextIsNeutral(t *testing.T) {
	c, _ := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty text must not reach the remote endpoint")
	})

	if got := c.Classify(context.Background(), "   "); got != types.SentimentNeutral {
		t.Errorf("expected neutral for empty text, got %q", got)
	}
}

func TestMapLabel(t *testing.T) {
	tests := []struct {
		label string
		want  types.Sentiment
	}{
		{"POSITIVE", types.SentimentPositive},
		{"NEGATIVE", types.SentimentNegative},
		{"positive", types.SentimentPositive},
		{"1 star", types.SentimentNegative},
		{"2 stars", types.SentimentNegative},
		{"3 stars", types.SentimentNeutral},
		{"4 stars", types.SentimentPositive},
		{"5 stars", types.SentimentPositive},
		{"LABEL_1", types.SentimentNeutral},
		{"", types.SentimentNeutral},
	}

	for _, tt := range tests {
		if got := mapLabel(tt.label); got != tt.want {
			t.Errorf("mapLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
