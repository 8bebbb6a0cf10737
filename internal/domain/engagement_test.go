package domain_test

import (
	"testing"

	"github.com/jonesrussell/feed-engine/internal/domain"
)

func TestEventType_Valid(t *testing.T) {
	tests := []struct {
		eventType string
		want      bool
	}{
		{"like", true},
		{"comment", true},
		{"share", true},
		{"poll_vote", true},
		{"view", false},
		{"LIKE", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			if got := domain.EventType(tt.eventType).Valid(); got != tt.want {
				t.Errorf("EventType(%q).Valid() = %v, want %v", tt.eventType, got, tt.want)
			}
		})
	}
}

func TestClearType_Valid(t *testing.T) {
	tests := []struct {
		clearType string
		want      bool
	}{
		{"all", true},
		{"interactions", true},
		{"preferences", true},
		{"events", true},
		{"everything", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.clearType, func(t *testing.T) {
			if got := domain.ClearType(tt.clearType).Valid(); got != tt.want {
				t.Errorf("ClearType(%q).Valid() = %v, want %v", tt.clearType, got, tt.want)
			}
		})
	}
}
