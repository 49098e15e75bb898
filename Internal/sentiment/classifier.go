package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fazecat/moodsy/Internal/types"
	"github.com/fazecat/moodsy/Internal/utils/logger"
)

const defaultInferenceBaseURL = "https://api-inference.huggingface.co/models"

// Classifier labels text via the HuggingFace inference API, memoizing
// results in an injected Cache. Classify never fails: any upstream
// problem degrades the one label to neutral instead of surfacing.
type Classifier struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client

	cache *Cache
}

func NewClassifier(apiKey, model string, timeout time.Duration, cache *Cache) *Classifier {
	return &Classifier{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultInferenceBaseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		cache: cache,
	}
}

type inferenceLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns the sentiment for text. Cache hits skip the remote
// call; only successful classifications populate the cache, so a failed
// text can be retried on a later request.
func (c *Classifier) Classify(ctx context.Context, text string) types.Sentiment {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.SentimentNeutral
	}

	if label, ok := c.cache.Get(text); ok {
		return label
	}

	label, err := c.classifyRemote(ctx, text)
	if err != nil {
		logger.Warn("sentiment classification failed",
			zap.String("model", c.Model),
			zap.Error(err),
		)
		return types.SentimentNeutral
	}

	c.cache.Put(text, label)
	return label
}

func (c *Classifier) classifyRemote(ctx context.Context, text string) (types.Sentiment, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.BaseURL + "/" + c.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API returned status %d", resp.StatusCode)
	}

	labels, err := decodeLabels(resp.Body)
	if err != nil {
		return "", err
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("inference response contained no labels")
	}

	return mapLabel(labels[0].Label), nil
}

// decodeLabels handles both response shapes the inference API emits:
// a flat label list and a list nested per input.
func decodeLabels(r io.Reader) ([]inferenceLabel, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode inference response: %w", err)
	}

	var nested [][]inferenceLabel
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}

	var flat []inferenceLabel
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("unexpected inference response shape: %w", err)
	}
	return flat, nil
}

// mapLabel maps a model output label to the 3-way sentiment. Binary
// polarity labels map directly; star ratings map by the 2/3/4 rule;
// anything unrecognized is neutral.
func mapLabel(label string) types.Sentiment {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "POSITIVE":
		return types.SentimentPositive
	case "NEGATIVE":
		return types.SentimentNegative
	}

	if stars, ok := parseStars(label); ok {
		switch {
		case stars <= 2:
			return types.SentimentNegative
		case stars == 3:
			return types.SentimentNeutral
		default:
			return types.SentimentPositive
		}
	}

	return types.SentimentNeutral
}

// parseStars recognizes labels like "1 star" and "5 stars".
func parseStars(label string) (int, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(label)))
	if len(fields) != 2 {
		return 0, false
	}
	if fields[1] != "star" && fields[1] != "stars" {
		return 0, false
	}
	stars, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return stars, true
}
