// Package feed orchestrates the aggregation pipeline: cache lookup, origin
// fetch, identity hashing, engagement scoring, personalization and
// pagination.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/logger"
	"github.com/jonesrussell/feed-engine/internal/metrics"
	"github.com/jonesrussell/feed-engine/internal/newsclient"
	"github.com/jonesrussell/feed-engine/internal/personalization"
	"github.com/jonesrussell/feed-engine/internal/trending"
)

// maxCandidates bounds the per-location candidate set held in memory for
// ranking. The set is already bounded by the cache TTL window; this is the
// hard ceiling.
const maxCandidates = 100

// ArticleStore is the slice of the article repository the feed needs.
type ArticleStore interface {
	GetCached(ctx context.Context, location string, page, limit int) ([]domain.Article, int, bool, error)
	Upsert(ctx context.Context, article domain.Article) (domain.Article, error)
}

// EngagementStore supplies engagement counts and recent user history.
type EngagementStore interface {
	CountsFor(ctx context.Context, articleIDs []string) (map[string]domain.EngagementCounts, error)
	RecentByUser(ctx context.Context, userID string, since time.Time) ([]domain.EngagedArticle, error)
}

// SourceFetcher queries the external news source.
type SourceFetcher interface {
	Fetch(ctx context.Context, city, country string) ([]newsclient.SourceArticle, error)
}

// Request is a feed query. UserID is empty for anonymous callers.
type Request struct {
	City    string
	Country string
	Page    int
	Limit   int
	UserID  string
}

// Page is a ranked, paginated feed response.
type Page struct {
	Articles    []domain.Article
	Total       int
	Page        int
	HasMore     bool
	Cached      bool
	Preferences *domain.PreferenceProfile
}

// Service implements the feed pipeline.
type Service struct {
	articles   ArticleStore
	engagement EngagementStore
	source     SourceFetcher
	metrics    *metrics.Metrics
	logger     logger.Logger
	now        func() time.Time
}

// NewService creates a feed Service.
func NewService(articles ArticleStore, engagement EngagementStore, source SourceFetcher, m *metrics.Metrics, log logger.Logger) *Service {
	return &Service{
		articles:   articles,
		engagement: engagement,
		source:     source,
		metrics:    m,
		logger:     log,
		now:        time.Now,
	}
}

// GetFeed returns the ranked feed page for a location. When the cache has no
// live articles for the location the origin is queried, each result is
// identity-hashed and persisted with a fresh TTL, and the successfully
// processed subset becomes the candidate set.
func (s *Service) GetFeed(ctx context.Context, req Request) (*Page, error) {
	normalizeRequest(&req)

	candidates, total, hit, err := s.articles.GetCached(ctx, req.City, 1, maxCandidates)
	if err != nil {
		return nil, err
	}

	if hit {
		s.metrics.CacheHits.Inc()
		// Ranking and pagination only ever see the candidate set, so the
		// reported total must not promise pages beyond it.
		if total > len(candidates) {
			total = len(candidates)
		}
	} else {
		s.metrics.CacheMisses.Inc()
		candidates, err = s.refresh(ctx, req.City, req.Country)
		if err != nil {
			return nil, err
		}
		total = len(candidates)
	}

	ranked, prefs, err := s.rank(ctx, candidates, req.UserID)
	if err != nil {
		return nil, err
	}

	pageArticles, hasMore := paginate(ranked, req.Page, req.Limit)

	return &Page{
		Articles:    pageArticles,
		Total:       total,
		Page:        req.Page,
		HasMore:     hasMore,
		Cached:      hit,
		Preferences: prefs,
	}, nil
}

// refresh queries the origin and persists each result under its content
// hash. Failures are isolated per article: a bad candidate is skipped and
// logged, never aborting the batch.
func (s *Service) refresh(ctx context.Context, city, country string) ([]domain.Article, error) {
	fetched, err := s.source.Fetch(ctx, city, country)
	if err != nil {
		return nil, fmt.Errorf("origin fetch for %q: %w", city, err)
	}

	articles := make([]domain.Article, 0, len(fetched))
	var lastErr error
	skipped := 0

	for _, raw := range fetched {
		if raw.URL == "" || raw.Title == "" {
			skipped++
			continue
		}

		stored, err := s.articles.Upsert(ctx, domain.Article{
			ID:           domain.ComputeArticleID(raw.URL),
			Title:        raw.Title,
			Description:  raw.Description,
			Content:      raw.Content,
			URL:          raw.URL,
			ImageURL:     raw.ImageURL,
			SourceName:   raw.SourceName,
			PublishedAt:  raw.PublishedAt,
			LocationName: city,
		})
		if err != nil {
			if ctx.Err() != nil {
				// Caller is gone; stop instead of half-writing the batch.
				return nil, ctx.Err()
			}
			skipped++
			lastErr = err
			s.logger.Warn("Skipping article after upsert failure",
				logger.String("url", raw.URL),
				logger.Error(err),
			)
			continue
		}

		articles = append(articles, stored)
	}

	if skipped > 0 {
		s.metrics.ArticlesSkipped.Add(float64(skipped))
		s.logger.Info("Processed article batch with skips",
			logger.String("city", city),
			logger.Int("stored", len(articles)),
			logger.Int("skipped", skipped),
		)
	}

	if len(articles) == 0 && lastErr != nil {
		// Nothing usable made it through; surface the storage failure
		// rather than disguising it as an empty feed.
		return nil, lastErr
	}

	return articles, nil
}

// rank attaches trending scores, applies personalization when a caller
// identity is present, and stable-sorts descending. Equal scores keep fetch
// order.
func (s *Service) rank(ctx context.Context, candidates []domain.Article, userID string) ([]domain.Article, *domain.PreferenceProfile, error) {
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	ids := make([]string, len(candidates))
	for i, a := range candidates {
		ids[i] = a.ID
	}

	counts, err := s.engagement.CountsFor(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	var prefs *domain.PreferenceProfile
	if userID != "" {
		since := s.now().AddDate(0, 0, -personalization.WindowDays)
		engaged, err := s.engagement.RecentByUser(ctx, userID, since)
		if err != nil {
			return nil, nil, err
		}
		p := personalization.BuildProfile(engaged)
		prefs = &p
	}

	now := s.now()
	scored := make([]trending.Scored, len(candidates))
	for i, article := range candidates {
		score := trending.Score(counts[article.ID], article.PublishedAt, now)
		if prefs != nil {
			score = personalization.Personalize(article, score, *prefs)
		}
		scored[i] = trending.Scored{Article: article, Score: score}
	}

	trending.Rank(scored)

	ranked := make([]domain.Article, len(scored))
	for i, sc := range scored {
		ranked[i] = sc.Article
	}
	return ranked, prefs, nil
}

func normalizeRequest(req *Request) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 20
	}
}

// paginate slices the ranked candidate set for the requested page.
func paginate(ranked []domain.Article, page, limit int) ([]domain.Article, bool) {
	offset := (page - 1) * limit
	if offset >= len(ranked) {
		return []domain.Article{}, false
	}

	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end], end < len(ranked)
}
