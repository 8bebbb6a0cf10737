package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/lib/pq"
)

// articleColumns is the column list shared by all article SELECTs.
const articleColumns = `article_id, title, description, content, url, image_url,
	       source_name, published_at, location_name, category, ai_summary,
	       ai_keywords, cached_at, expires_at`

// ArticleRepository persists cached articles keyed by content hash.
type ArticleRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewArticleRepository creates an ArticleRepository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db, now: time.Now}
}

// cacheErr tags a storage failure so callers can detect the
// cache-unavailable condition without parsing messages.
func cacheErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrCacheUnavailable, err)
}

// GetCached returns the requested page of non-expired articles for a
// location, newest first, plus the total number of live rows. hit is false
// when the page is empty; the caller must then fall through to the origin
// fetch (no partial-cache merge).
func (r *ArticleRepository) GetCached(ctx context.Context, location string, page, limit int) ([]domain.Article, int, bool, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	now := r.now()

	var articles []domain.Article
	err := r.db.SelectContext(ctx, &articles, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE location_name = $1
		  AND expires_at > $2
		ORDER BY published_at DESC
		LIMIT $3 OFFSET $4
	`, location, now, limit, offset)
	if err != nil {
		return nil, 0, false, cacheErr("get cached articles", err)
	}

	if len(articles) == 0 {
		return nil, 0, false, nil
	}

	var total int
	err = r.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM articles
		WHERE location_name = $1 AND expires_at > $2
	`, location, now)
	if err != nil {
		return nil, 0, false, cacheErr("count cached articles", err)
	}

	return articles, total, true, nil
}

// Upsert writes or replaces an article by its content-hash ID. The write is a
// single statement, so a cancelled request leaves either the full row or no
// row. cached_at and expires_at are always reset to now and now+TTL; the
// replace is last-writer-wins, which lets concurrent fetches of the same URL
// converge without locking. An existing ai_summary and category survive
// re-fetches, since the summary cache outlives the feed TTL.
func (r *ArticleRepository) Upsert(ctx context.Context, article domain.Article) (domain.Article, error) {
	now := r.now()
	article.CachedAt = now
	article.ExpiresAt = now.Add(domain.CacheTTL)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO articles (
			article_id, title, description, content, url, image_url,
			source_name, published_at, location_name, category, ai_summary,
			cached_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (article_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			content = EXCLUDED.content,
			url = EXCLUDED.url,
			image_url = EXCLUDED.image_url,
			source_name = EXCLUDED.source_name,
			published_at = EXCLUDED.published_at,
			location_name = EXCLUDED.location_name,
			category = CASE WHEN EXCLUDED.category = ''
				THEN articles.category ELSE EXCLUDED.category END,
			ai_summary = COALESCE(EXCLUDED.ai_summary, articles.ai_summary),
			cached_at = EXCLUDED.cached_at,
			expires_at = EXCLUDED.expires_at
	`, article.ID, article.Title, article.Description, article.Content,
		article.URL, article.ImageURL, article.SourceName, article.PublishedAt,
		article.LocationName, article.Category, article.AISummary,
		article.CachedAt, article.ExpiresAt)
	if err != nil {
		return domain.Article{}, cacheErr("upsert article", err)
	}

	return article, nil
}

// GetByID returns a single article regardless of expiry. The summarization
// pipeline uses it for its cache-first lookup.
func (r *ArticleRepository) GetByID(ctx context.Context, articleID string) (*domain.Article, error) {
	var article domain.Article
	err := r.db.GetContext(ctx, &article, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE article_id = $1
	`, articleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, cacheErr("get article", err)
	}
	return &article, nil
}

// SetSummary persists a freshly generated AI summary with its keywords and
// category, so cache hits return the same enrichment the generation produced.
func (r *ArticleRepository) SetSummary(ctx context.Context, articleID, summary string, keywords []string, category string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE articles
		SET ai_summary = $2, ai_keywords = $3, category = $4
		WHERE article_id = $1
	`, articleID, summary, pq.Array(keywords), category)
	if err != nil {
		return cacheErr("set article summary", err)
	}
	return nil
}
