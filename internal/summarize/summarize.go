// Package summarize implements the cache-first AI summarization pipeline
// with a deterministic local fallback.
package summarize

import (
	"context"
	"errors"

	"github.com/jonesrussell/feed-engine/internal/domain"
)

// ArticleInput is the externally-supplied article to summarize.
type ArticleInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

// Generation is a validated summarization result.
type Generation struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
	Category string   `json:"category"`
}

// Result is what the pipeline returns to callers. Fallback marks results
// produced by the local degraded path rather than the external generator.
type Result struct {
	Generation
	Cached   bool `json:"cached"`
	Fallback bool `json:"-"`
}

// Generator produces a summary for an article, typically via an external
// model. Implementations must apply their own timeout and make exactly one
// attempt; retry policy belongs to the transport layer, not this engine.
type Generator interface {
	Generate(ctx context.Context, input ArticleInput) (*Generation, error)
}

// ArticleStore is the slice of the article repository the pipeline needs.
type ArticleStore interface {
	GetByID(ctx context.Context, articleID string) (*domain.Article, error)
	SetSummary(ctx context.Context, articleID, summary string, keywords []string, category string) error
}

// ErrGeneratorDisabled is returned by DisabledGenerator; the pipeline
// answers such requests from the local fallback.
var ErrGeneratorDisabled = errors.New("summarizer is not configured")

// DisabledGenerator stands in when no API key is configured.
type DisabledGenerator struct{}

// Generate always fails with ErrGeneratorDisabled.
func (DisabledGenerator) Generate(context.Context, ArticleInput) (*Generation, error) {
	return nil, ErrGeneratorDisabled
}
