package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/logger"
	"github.com/jonesrussell/feed-engine/internal/summarize"
)

// SummarizeService is the summarization pipeline as the HTTP layer sees it.
type SummarizeService interface {
	Summarize(ctx context.Context, articleID string, input summarize.ArticleInput) (summarize.Result, error)
}

// SummarizeHandler serves on-demand article summarization.
type SummarizeHandler struct {
	summaries SummarizeService
	logger    logger.Logger
}

// NewSummarizeHandler creates a SummarizeHandler.
func NewSummarizeHandler(summaries SummarizeService, log logger.Logger) *SummarizeHandler {
	return &SummarizeHandler{summaries: summaries, logger: log}
}

type summarizeRequest struct {
	ArticleID string                 `json:"articleId"`
	Article   summarize.ArticleInput `json:"article"`
}

// Summarize returns the summary for one article, from cache when possible.
// The article ID is derived from the URL when the caller does not supply one,
// so repeated requests for the same URL share a cache entry.
func (h *SummarizeHandler) Summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Article.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article title is required"})
		return
	}

	articleID := req.ArticleID
	if articleID == "" {
		if req.Article.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "articleId or article url is required"})
			return
		}
		articleID = domain.ComputeArticleID(req.Article.URL)
	}

	result, err := h.summaries.Summarize(c.Request.Context(), articleID, req.Article)
	if err != nil {
		// The pipeline still produced a usable fallback; return it with
		// the failure so clients can render while alerting fires.
		h.logger.Error("Summarize degraded by storage failure",
			logger.String("article_id", articleID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "summary cache unavailable",
			"summary":  result.Summary,
			"keywords": result.Keywords,
			"category": result.Category,
			"cached":   false,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
