// Package audit publishes analytics events to a Redis stream. Publishing is
// fire-and-forget: it must never block or fail a user-facing response.
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/feed-engine/internal/logger"
	"github.com/redis/go-redis/v9"
)

// emitTimeout bounds each background XADD.
const emitTimeout = 2 * time.Second

// ErrEmptyAddress is returned when the Redis address is not configured.
var ErrEmptyAddress = errors.New("redis address is required")

// connectionTimeout is the timeout for verifying the Redis connection.
const connectionTimeout = 5 * time.Second

// SummaryEvent records one fresh summary generation for later analytics.
type SummaryEvent struct {
	ArticleID     string
	SummaryLength int
	KeywordCount  int
	Category      string
	Mode          string // "ai" or "fallback"
}

// Publisher emits audit events.
type Publisher interface {
	SummaryGenerated(event SummaryEvent)
}

// NewRedisClient creates and verifies a Redis client for audit publishing.
func NewRedisClient(address, password string, db int) (*redis.Client, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// StreamPublisher writes audit events to a Redis stream.
type StreamPublisher struct {
	client *redis.Client
	stream string
	logger logger.Logger
}

// NewStreamPublisher creates a StreamPublisher on the given stream.
func NewStreamPublisher(client *redis.Client, stream string, log logger.Logger) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		stream: stream,
		logger: log,
	}
}

// SummaryGenerated appends the event to the stream from a goroutine with its
// own timeout. Errors are logged and dropped.
func (p *StreamPublisher) SummaryGenerated(event SummaryEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()

		err := p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: p.stream,
			Values: map[string]any{
				"event":          "summary_generated",
				"article_id":     event.ArticleID,
				"summary_length": event.SummaryLength,
				"keyword_count":  event.KeywordCount,
				"category":       event.Category,
				"mode":           event.Mode,
				"emitted_at":     time.Now().UTC().Format(time.RFC3339),
			},
		}).Err()
		if err != nil {
			p.logger.Warn("Failed to publish audit event",
				logger.String("stream", p.stream),
				logger.String("article_id", event.ArticleID),
				logger.Error(err),
			)
		}
	}()
}

// NopPublisher discards audit events. Used when Redis is not configured.
type NopPublisher struct{}

// SummaryGenerated does nothing.
func (NopPublisher) SummaryGenerated(SummaryEvent) {}
