package geo

import (
	"context"
	"errors"
)

// ErrUnresolved means neither the static table nor the fallback produced
// an allow-listed code. Callers treat this as "no country", not a failure:
// retrieval falls back to full-text search.
var ErrUnresolved = errors.New("country could not be resolved")

// Resolver maps free-text country input to a 2-letter lowercase code.
type Resolver interface {
	ResolveCountry(ctx context.Context, name string) (string, error)
}

// StaticResolver resolves against the fixed allow-list and alias table.
type StaticResolver struct{}

func NewStaticResolver() *StaticResolver {
	return &StaticResolver{}
}

func (s *StaticResolver) ResolveCountry(ctx context.Context, name string) (string, error) {
	_ = ctx
	key := normalizeKey(name)
	if key == "" {
		return "", errors.New("empty country name")
	}
	// A valid 2-letter code passes through directly.
	if len(key) == 2 && IsValidCode(key) {
		return key, nil
	}
	if code, ok := aliases[key]; ok {
		return code, nil
	}
	return "", ErrUnresolved
}

// HybridResolver tries the static table first, then an optional
// completion-backed fallback. Fallback failures of any kind collapse into
// ErrUnresolved so the pipeline can continue without a code.
type HybridResolver struct {
	Static   *StaticResolver
	Fallback Resolver // optional
}

func NewHybridResolver(fallback Resolver) *HybridResolver {
	return &HybridResolver{
		Static:   NewStaticResolver(),
		Fallback: fallback,
	}
}

func (h *HybridResolver) ResolveCountry(ctx context.Context, name string) (string, error) {
	code, err := h.Static.ResolveCountry(ctx, name)
	if err == nil {
		return code, nil
	}
	if !errors.Is(err, ErrUnresolved) {
		return "", err
	}

	if h.Fallback == nil {
		return "", ErrUnresolved
	}
	code, err = h.Fallback.ResolveCountry(ctx, name)
	if err != nil {
		return "", ErrUnresolved
	}
	return code, nil
}
