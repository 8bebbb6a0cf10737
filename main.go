package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/feed-engine/internal/api"
	"github.com/jonesrussell/feed-engine/internal/audit"
	"github.com/jonesrussell/feed-engine/internal/config"
	"github.com/jonesrussell/feed-engine/internal/feed"
	"github.com/jonesrussell/feed-engine/internal/handler"
	"github.com/jonesrussell/feed-engine/internal/logger"
	"github.com/jonesrussell/feed-engine/internal/metrics"
	"github.com/jonesrussell/feed-engine/internal/newsclient"
	"github.com/jonesrussell/feed-engine/internal/storage"
	"github.com/jonesrussell/feed-engine/internal/summarize"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	db, err := storage.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		log.Error("Failed to connect to database", logger.Error(err))
		return 1
	}
	defer func() { _ = db.Close() }()

	log.Info("Database connected",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("database", cfg.Database.Database),
	)

	return runServer(cfg, log, db)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// runServer wires all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger, db *sqlx.DB) int {
	registry := prometheus.NewRegistry()
	engineMetrics := metrics.New(registry)

	articles := storage.NewArticleRepository(db)
	engagement := storage.NewEngagementRepository(db)

	source := newsclient.New(cfg.NewsAPI.BaseURL, cfg.NewsAPI.APIKey, cfg.NewsAPI.Timeout)
	feeds := feed.NewService(articles, engagement, source, engineMetrics, log)

	auditor, closeAuditor := buildAuditor(cfg, log)
	defer closeAuditor()

	summaries := summarize.NewService(articles, buildGenerator(cfg, log), auditor, engineMetrics, log)

	handlers := api.Handlers{
		Health:     handler.NewHealthHandler(cfg.Service.Version, db),
		Feed:       handler.NewFeedHandler(feeds, log, cfg.Service.PageLimit, cfg.Service.MaxLimit),
		Summarize:  handler.NewSummarizeHandler(summaries, log),
		Engagement: handler.NewEngagementHandler(engagement, log),
		History:    handler.NewHistoryHandler(engagement, log),
	}

	// done stops background goroutines (rate limiter cleanup) on shutdown.
	done := make(chan struct{})
	defer close(done)

	server := api.NewServer(cfg.Service.Port, cfg.Service.Debug, log, func(router *gin.Engine) {
		api.SetupRoutes(router, handlers, cfg, registry, done)
	})

	log.Info("Feed engine starting",
		logger.Int("port", cfg.Service.Port),
		logger.String("version", cfg.Service.Version),
	)

	if err := server.Run(); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Feed engine exited cleanly")
	return 0
}

// buildGenerator returns the Anthropic generator, or the disabled stand-in
// when no API key is configured so every summary uses the local fallback.
func buildGenerator(cfg *config.Config, log logger.Logger) summarize.Generator {
	if cfg.AI.APIKey == "" {
		log.Warn("AI summarization disabled, no API key configured")
		return summarize.DisabledGenerator{}
	}
	return summarize.NewAnthropicGenerator(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxTokens, cfg.AI.Timeout)
}

// buildAuditor connects the Redis audit stream publisher. Audit is optional
// analytics: a missing or unreachable Redis degrades to a no-op publisher.
func buildAuditor(cfg *config.Config, log logger.Logger) (audit.Publisher, func()) {
	if cfg.Redis.Address == "" {
		return audit.NopPublisher{}, func() {}
	}

	client, err := audit.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("Audit publishing disabled", logger.Error(err))
		return audit.NopPublisher{}, func() {}
	}

	log.Info("Audit stream connected",
		logger.String("address", cfg.Redis.Address),
		logger.String("stream", cfg.Redis.Stream),
	)
	return audit.NewStreamPublisher(client, cfg.Redis.Stream, log), func() { _ = client.Close() }
}
