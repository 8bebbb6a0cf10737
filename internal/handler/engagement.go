package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonesrussell/feed-engine/internal/auth"
	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/logger"
	"github.com/jonesrussell/feed-engine/internal/middleware"
)

// EngagementRecorder appends engagement events.
type EngagementRecorder interface {
	Insert(ctx context.Context, event domain.EngagementEvent) error
}

// EngagementHandler records user interactions with articles.
type EngagementHandler struct {
	events EngagementRecorder
	logger logger.Logger
}

// NewEngagementHandler creates an EngagementHandler.
func NewEngagementHandler(events EngagementRecorder, log logger.Logger) *EngagementHandler {
	return &EngagementHandler{events: events, logger: log}
}

type engagementRequest struct {
	ArticleID string `binding:"required" json:"articleId"`
	EventType string `binding:"required" json:"eventType"`
}

// Record appends one engagement event for the authenticated caller. Requests
// flagged as bot traffic are acknowledged but not recorded, so crawlers never
// move trending scores.
func (h *EngagementHandler) Record(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req engagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "articleId and eventType are required"})
		return
	}

	eventType := domain.EventType(req.EventType)
	if !eventType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event type"})
		return
	}

	if middleware.IsBot(c) {
		c.JSON(http.StatusOK, gin.H{"recorded": false})
		return
	}

	event := domain.EngagementEvent{
		ID:        uuid.New(),
		UserID:    userID,
		ArticleID: req.ArticleID,
		EventType: eventType,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.events.Insert(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to record engagement event",
			logger.String("article_id", req.ArticleID),
			logger.String("event_type", req.EventType),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recorded": true, "id": event.ID})
}
