package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/fazecat/moodsy/Internal/utils/logger"
)

// CompletionResolver asks a chat-completion model for the ISO code when
// the static table has no answer. The model reply is free text; only the
// trailing two characters are inspected and they must land in the
// allow-list, otherwise the input stays unresolved.
type CompletionResolver struct {
	client *openai.Client
	model  string
}

// NewCompletionResolver returns nil when no API key is configured, which
// disables the fallback path without disabling static resolution.
func NewCompletionResolver(apiKey, model string) *CompletionResolver {
	if apiKey == "" {
		return nil
	}
	return &CompletionResolver{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewCompletionResolverWithBaseURL is used by tests to point the client at
// a fake completion server.
func NewCompletionResolverWithBaseURL(apiKey, model, baseURL string) *CompletionResolver {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &CompletionResolver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *CompletionResolver) ResolveCountry(ctx context.Context, name string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("completion API key is missing")
	}

	prompt := fmt.Sprintf("What is the 2-letter ISO country code for %s?", name)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 10,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	logger.Debug("completion resolver reply",
		zap.String("country", name),
		zap.String("reply", content),
	)

	if len(content) < 2 {
		return "", ErrUnresolved
	}
	code := strings.ToLower(content[len(content)-2:])
	if !IsValidCode(code) {
		return "", ErrUnresolved
	}
	return code, nil
}
