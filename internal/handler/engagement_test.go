package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/handler"
	"github.com/jonesrussell/feed-engine/internal/logger"
	"github.com/jonesrussell/feed-engine/internal/middleware"
)

type fakeRecorder struct {
	events []domain.EngagementEvent
	err    error
}

func (f *fakeRecorder) Insert(_ context.Context, event domain.EngagementEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func engagementRouter(rec *fakeRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewEngagementHandler(rec, logger.NewNop())

	r := gin.New()
	r.POST("/api/v1/engagement", middleware.BotFilter(), asUser("user-1"), h.Record)
	r.POST("/api/v1/engagement/anonymous", h.Record)
	return r
}

func TestEngagementHandler_RecordsEvent(t *testing.T) {
	rec := &fakeRecorder{}
	r := engagementRouter(rec)

	w := postJSON(t, r, "/api/v1/engagement", map[string]any{
		"articleId": "a1",
		"eventType": "like",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(rec.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(rec.events))
	}

	event := rec.events[0]
	if event.UserID != "user-1" || event.ArticleID != "a1" || event.EventType != domain.EventLike {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("event ID not generated")
	}
}

func TestEngagementHandler_RejectsAnonymous(t *testing.T) {
	r := engagementRouter(&fakeRecorder{})

	w := postJSON(t, r, "/api/v1/engagement/anonymous", map[string]any{
		"articleId": "a1",
		"eventType": "like",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestEngagementHandler_RejectsUnknownEventType(t *testing.T) {
	rec := &fakeRecorder{}
	r := engagementRouter(rec)

	w := postJSON(t, r, "/api/v1/engagement", map[string]any{
		"articleId": "a1",
		"eventType": "viewed",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(rec.events) != 0 {
		t.Error("invalid event was recorded")
	}
}

func TestEngagementHandler_RequiresFields(t *testing.T) {
	r := engagementRouter(&fakeRecorder{})

	w := postJSON(t, r, "/api/v1/engagement", map[string]any{"articleId": "a1"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestEngagementHandler_IgnoresBotTraffic(t *testing.T) {
	rec := &fakeRecorder{}
	gin.SetMode(gin.TestMode)
	h := handler.NewEngagementHandler(rec, logger.NewNop())

	r := gin.New()
	r.POST("/api/v1/engagement", middleware.BotFilter(), asUser("user-1"), h.Record)

	w := postJSONWithUA(t, r, "/api/v1/engagement", map[string]any{
		"articleId": "a1",
		"eventType": "like",
	}, "Googlebot/2.1")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(rec.events) != 0 {
		t.Errorf("bot event was recorded: %+v", rec.events)
	}
}
