package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType classifies an engagement event.
type EventType string

// Engagement event types. The set is closed; unknown types are rejected at
// the API boundary.
const (
	EventLike     EventType = "like"
	EventComment  EventType = "comment"
	EventShare    EventType = "share"
	EventPollVote EventType = "poll_vote"
)

// Valid reports whether t is a known engagement event type.
func (t EventType) Valid() bool {
	switch t {
	case EventLike, EventComment, EventShare, EventPollVote:
		return true
	}
	return false
}

// EngagementEvent is a single append-only interaction record. Events are
// never updated; they are removed only by an explicit history clear.
type EngagementEvent struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	UserID    string    `db:"user_id"    json:"user_id"`
	ArticleID string    `db:"article_id" json:"article_id"`
	EventType EventType `db:"event_type" json:"event_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EngagedArticle pairs an engagement event with the classification and text
// of the article it targeted. It is the input row for profile building.
type EngagedArticle struct {
	EventType    EventType `db:"event_type"`
	LocationName string    `db:"location_name"`
	SourceName   string    `db:"source_name"`
	Category     string    `db:"category"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	AISummary    *string   `db:"ai_summary"`
}

// EngagementCounts holds per-article engagement totals at read time.
type EngagementCounts struct {
	Likes     int `json:"likes"`
	Comments  int `json:"comments"`
	Shares    int `json:"shares"`
	PollVotes int `json:"poll_votes"`
}

// ClearType selects which of the caller's history rows a clear operation
// removes.
type ClearType string

// Supported history clear scopes.
const (
	ClearAll          ClearType = "all"
	ClearInteractions ClearType = "interactions"
	ClearPreferences  ClearType = "preferences"
	ClearEvents       ClearType = "events"
)

// Valid reports whether t is a known clear scope.
func (t ClearType) Valid() bool {
	switch t {
	case ClearAll, ClearInteractions, ClearPreferences, ClearEvents:
		return true
	}
	return false
}

// DeletedCounts reports how many rows a history clear removed, per kind.
type DeletedCounts struct {
	Likes       int `json:"likes"`
	Comments    int `json:"comments"`
	Shares      int `json:"shares"`
	PollVotes   int `json:"pollVotes"`
	Events      int `json:"events"`
	Preferences int `json:"preferences"`
}
