package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/lib/pq"
)

// EngagementRepository reads and clears raw interaction events. Events are
// append-only; the only delete path is an explicit history clear scoped to a
// single user.
type EngagementRepository struct {
	db *sqlx.DB
}

// NewEngagementRepository creates an EngagementRepository.
func NewEngagementRepository(db *sqlx.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// Insert appends a single engagement event.
func (r *EngagementRepository) Insert(ctx context.Context, event domain.EngagementEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO engagement_events (id, user_id, article_id, event_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, event.ID, event.UserID, event.ArticleID, event.EventType, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert engagement event: %w", err)
	}
	return nil
}

// CountsFor returns engagement totals for the given articles in one
// aggregate query. Articles with no events are present in the result with
// zero counts; counts are never cached, so they reflect state at call time.
func (r *EngagementRepository) CountsFor(ctx context.Context, articleIDs []string) (map[string]domain.EngagementCounts, error) {
	counts := make(map[string]domain.EngagementCounts, len(articleIDs))
	for _, id := range articleIDs {
		counts[id] = domain.EngagementCounts{}
	}
	if len(articleIDs) == 0 {
		return counts, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT article_id, event_type, COUNT(*)
		FROM engagement_events
		WHERE article_id = ANY($1)
		GROUP BY article_id, event_type
	`, pq.Array(articleIDs))
	if err != nil {
		return nil, fmt.Errorf("count engagement events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			articleID string
			eventType domain.EventType
			n         int
		)
		if err := rows.Scan(&articleID, &eventType, &n); err != nil {
			return nil, fmt.Errorf("scan engagement count row: %w", err)
		}

		c := counts[articleID]
		switch eventType {
		case domain.EventLike:
			c.Likes = n
		case domain.EventComment:
			c.Comments = n
		case domain.EventShare:
			c.Shares = n
		case domain.EventPollVote:
			c.PollVotes = n
		}
		counts[articleID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate engagement count rows: %w", err)
	}

	return counts, nil
}

// RecentByUser returns the caller's engagement events within the trailing
// window, each joined to its target article, newest first.
func (r *EngagementRepository) RecentByUser(ctx context.Context, userID string, since time.Time) ([]domain.EngagedArticle, error) {
	var engaged []domain.EngagedArticle
	err := r.db.SelectContext(ctx, &engaged, `
		SELECT e.event_type, a.location_name, a.source_name, a.category,
		       a.title, a.description, a.ai_summary
		FROM engagement_events e
		JOIN articles a ON a.article_id = e.article_id
		WHERE e.user_id = $1
		  AND e.created_at >= $2
		ORDER BY e.created_at DESC
	`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("get recent engagement: %w", err)
	}
	return engaged, nil
}

// ClearHistory bulk-deletes the caller's own history rows for the given
// scope and reports how many rows of each kind were removed. Scopes outside
// the requested clearType are never touched.
func (r *EngagementRepository) ClearHistory(ctx context.Context, userID string, clearType domain.ClearType) (domain.DeletedCounts, error) {
	var deleted domain.DeletedCounts

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return deleted, fmt.Errorf("begin clear history: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if clearType == domain.ClearAll || clearType == domain.ClearInteractions {
		if err := clearInteractions(ctx, tx, userID, &deleted); err != nil {
			return domain.DeletedCounts{}, err
		}
	}

	if clearType == domain.ClearAll || clearType == domain.ClearEvents {
		n, err := deleteUserRows(ctx, tx, "user_events", userID)
		if err != nil {
			return domain.DeletedCounts{}, err
		}
		deleted.Events = n
	}

	if clearType == domain.ClearAll || clearType == domain.ClearPreferences {
		n, err := deleteUserRows(ctx, tx, "user_preferences", userID)
		if err != nil {
			return domain.DeletedCounts{}, err
		}
		deleted.Preferences = n
	}

	if err := tx.Commit(); err != nil {
		return domain.DeletedCounts{}, fmt.Errorf("commit clear history: %w", err)
	}

	return deleted, nil
}

// clearInteractions deletes the user's engagement events and tallies the
// removed rows per event type.
func clearInteractions(ctx context.Context, tx *sqlx.Tx, userID string, deleted *domain.DeletedCounts) error {
	rows, err := tx.QueryContext(ctx, `
		DELETE FROM engagement_events
		WHERE user_id = $1
		RETURNING event_type
	`, userID)
	if err != nil {
		return fmt.Errorf("clear engagement events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventType domain.EventType
		if err := rows.Scan(&eventType); err != nil {
			return fmt.Errorf("scan cleared event type: %w", err)
		}
		switch eventType {
		case domain.EventLike:
			deleted.Likes++
		case domain.EventComment:
			deleted.Comments++
		case domain.EventShare:
			deleted.Shares++
		case domain.EventPollVote:
			deleted.PollVotes++
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate cleared event rows: %w", err)
	}
	return nil
}

// deleteUserRows removes all of a user's rows from the given table. The table
// name is one of two compile-time constants, never caller input.
func deleteUserRows(ctx context.Context, tx *sqlx.Tx, table, userID string) (int, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared %s rows: %w", table, err)
	}
	return int(n), nil
}
