package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/feed-engine/internal/auth"
	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/logger"
)

// HistoryStore clears a user's stored history.
type HistoryStore interface {
	ClearHistory(ctx context.Context, userID string, clearType domain.ClearType) (domain.DeletedCounts, error)
}

// HistoryHandler serves user history management.
type HistoryHandler struct {
	store  HistoryStore
	logger logger.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(store HistoryStore, log logger.Logger) *HistoryHandler {
	return &HistoryHandler{store: store, logger: log}
}

type clearHistoryRequest struct {
	ClearType string `json:"clearType"`
}

// Clear bulk-deletes the caller's history rows for the requested scope and
// reports per-kind deletion counts. The scope defaults to "all".
func (h *HistoryHandler) Clear(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req clearHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	clearType := domain.ClearType(req.ClearType)
	if req.ClearType == "" {
		clearType = domain.ClearAll
	}
	if !clearType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown clear type"})
		return
	}

	deleted, err := h.store.ClearHistory(c.Request.Context(), userID, clearType)
	if err != nil {
		h.logger.Error("Failed to clear history",
			logger.String("clear_type", string(clearType)),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"clear_type":     clearType,
		"deleted_counts": deleted,
		"cleared_at":     time.Now().UTC(),
	})
}
