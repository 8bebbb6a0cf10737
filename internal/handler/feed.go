// Package handler holds the gin HTTP handlers for the feed engine API.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/feed-engine/internal/auth"
	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/feed"
	"github.com/jonesrussell/feed-engine/internal/logger"
)

// FeedService is the feed pipeline as the HTTP layer sees it.
type FeedService interface {
	GetFeed(ctx context.Context, req feed.Request) (*feed.Page, error)
}

// FeedHandler serves the ranked article feed.
type FeedHandler struct {
	feeds        FeedService
	logger       logger.Logger
	defaultLimit int
	maxLimit     int
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(feeds FeedService, log logger.Logger, defaultLimit, maxLimit int) *FeedHandler {
	return &FeedHandler{
		feeds:        feeds,
		logger:       log,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

type feedRequest struct {
	City    string `binding:"required" json:"city"`
	Country string `binding:"required" json:"country"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
}

type feedResponse struct {
	Articles    []domain.Article          `json:"articles"`
	Total       int                       `json:"total"`
	Page        int                       `json:"page"`
	HasMore     bool                      `json:"has_more"`
	Cached      bool                      `json:"cached"`
	Preferences *domain.PreferenceProfile `json:"preferences,omitempty"`
}

// GetFeed returns the trending-ranked feed for a location.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	h.serve(c, "")
}

// GetPersonalizedFeed returns the feed re-ranked with the caller's
// preference profile. Requires an authenticated identity.
func (h *FeedHandler) GetPersonalizedFeed(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	h.serve(c, userID)
}

func (h *FeedHandler) serve(c *gin.Context, userID string) {
	var req feedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city and country are required"})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = h.defaultLimit
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	page, err := h.feeds.GetFeed(c.Request.Context(), feed.Request{
		City:    req.City,
		Country: req.Country,
		Page:    req.Page,
		Limit:   limit,
		UserID:  userID,
	})
	if err != nil {
		// Upstream and storage failures alike surface as a generic 500;
		// the distinction lives in the log entry, not the response.
		h.logger.Error("Feed request failed",
			logger.String("city", req.City),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build feed"})
		return
	}

	articles := page.Articles
	if articles == nil {
		articles = []domain.Article{}
	}

	c.JSON(http.StatusOK, feedResponse{
		Articles:    articles,
		Total:       page.Total,
		Page:        page.Page,
		HasMore:     page.HasMore,
		Cached:      page.Cached,
		Preferences: page.Preferences,
	})
}
