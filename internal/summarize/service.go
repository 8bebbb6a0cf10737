package summarize

import (
	"context"
	"errors"

	"github.com/jonesrussell/feed-engine/internal/audit"
	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/logger"
	"github.com/jonesrussell/feed-engine/internal/metrics"
)

// Summarization result modes, used for metrics and audit events.
const (
	modeCache    = "cache"
	modeAI       = "ai"
	modeFallback = "fallback"
)

// Service runs the cache-first summarization state machine. It never returns
// a failed result: the worst case is a deterministic local fallback, because
// the feed must stay renderable without enrichment.
type Service struct {
	store     ArticleStore
	generator Generator
	auditor   audit.Publisher
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewService creates a summarization Service.
func NewService(store ArticleStore, generator Generator, auditor audit.Publisher, m *metrics.Metrics, log logger.Logger) *Service {
	return &Service{
		store:     store,
		generator: generator,
		auditor:   auditor,
		metrics:   m,
		logger:    log,
	}
}

// Summarize produces a summary for the article. The returned Result is
// always usable; the error, when non-nil, reports an internal storage
// failure the handler may surface as a degraded 500.
func (s *Service) Summarize(ctx context.Context, articleID string, input ArticleInput) (Result, error) {
	cached, err := s.cachedSummary(ctx, articleID)
	if err != nil {
		// Cache store is down. Still answer with the fallback so the
		// caller can render, and report the failure.
		result := s.fallbackResult(articleID, input)
		return result, err
	}
	if cached != nil {
		s.metrics.Summaries.WithLabelValues(modeCache).Inc()
		return *cached, nil
	}

	gen, genErr := s.generator.Generate(ctx, input)
	if genErr != nil {
		s.logger.Warn("Summarizer unavailable, using fallback",
			logger.String("article_id", articleID),
			logger.Error(genErr),
		)
		return s.fallbackResult(articleID, input), nil
	}

	if err := s.store.SetSummary(ctx, articleID, gen.Summary, gen.Keywords, gen.Category); err != nil {
		// The generation succeeded; losing the cache write degrades the
		// next call, not this one.
		s.logger.Warn("Failed to persist summary",
			logger.String("article_id", articleID),
			logger.Error(err),
		)
	}

	s.metrics.Summaries.WithLabelValues(modeAI).Inc()
	s.emit(articleID, *gen, modeAI)

	return Result{Generation: *gen, Cached: false}, nil
}

// cachedSummary returns the stored summary when one exists. A missing
// article or null summary is a cache miss, not an error.
func (s *Service) cachedSummary(ctx context.Context, articleID string) (*Result, error) {
	article, err := s.store.GetByID(ctx, articleID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if article.AISummary == nil || *article.AISummary == "" {
		return nil, nil
	}

	return &Result{
		Generation: Generation{
			Summary:  *article.AISummary,
			Keywords: []string(article.AIKeywords),
			Category: article.Category,
		},
		Cached: true,
	}, nil
}

func (s *Service) fallbackResult(articleID string, input ArticleInput) Result {
	gen := Fallback(input)
	s.metrics.Summaries.WithLabelValues(modeFallback).Inc()
	s.emit(articleID, gen, modeFallback)
	return Result{Generation: gen, Cached: false, Fallback: true}
}

func (s *Service) emit(articleID string, gen Generation, mode string) {
	s.auditor.SummaryGenerated(audit.SummaryEvent{
		ArticleID:     articleID,
		SummaryLength: len(gen.Summary),
		KeywordCount:  len(gen.Keywords),
		Category:      gen.Category,
		Mode:          mode,
	})
}
