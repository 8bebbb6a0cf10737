// Package domain defines the core entities of the feed engine.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/lib/pq"
)

// CacheTTL is the fixed validity window for cached articles.
// It is embedded in the write path and not configurable per request.
const CacheTTL = 15 * time.Minute

// ErrCacheUnavailable wraps storage failures in the article cache path.
// Callers decide whether to fall back to an uncached fetch.
var ErrCacheUnavailable = errors.New("article cache unavailable")

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Article is a cached news article. The article_id is a content hash of the
// canonical URL; all externally-sourced fields are immutable per hash, while
// location_name and category may be rewritten by re-processing.
type Article struct {
	ID           string         `db:"article_id"    json:"article_id"`
	Title        string         `db:"title"         json:"title"`
	Description  string         `db:"description"   json:"description"`
	Content      string         `db:"content"       json:"content"`
	URL          string         `db:"url"           json:"url"`
	ImageURL     string         `db:"image_url"     json:"image_url,omitempty"`
	SourceName   string         `db:"source_name"   json:"source_name"`
	PublishedAt  time.Time      `db:"published_at"  json:"published_at"`
	LocationName string         `db:"location_name" json:"location_name"`
	Category     string         `db:"category"      json:"category"`
	AISummary    *string        `db:"ai_summary"    json:"ai_summary,omitempty"`
	AIKeywords   pq.StringArray `db:"ai_keywords"   json:"ai_keywords,omitempty"`
	CachedAt     time.Time      `db:"cached_at"     json:"cached_at"`
	ExpiresAt    time.Time      `db:"expires_at"    json:"expires_at"`
}

// ComputeArticleID derives the stable article identifier from the canonical
// URL. Identical URLs always yield identical IDs; this is the sole
// de-duplication mechanism across fetches, so the hash must stay sha256/hex.
// Collisions are not handled.
func ComputeArticleID(canonicalURL string) string {
	h := sha256.Sum256([]byte(canonicalURL))
	return hex.EncodeToString(h[:])
}
