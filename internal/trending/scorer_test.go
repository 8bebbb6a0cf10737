package trending_test

import (
	"math"
	"testing"
	"time"

	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/trending"
)

const epsilon = 1e-9

func TestScore_Weights(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		counts domain.EngagementCounts
		want   float64
	}{
		{"no engagement", domain.EngagementCounts{}, 0},
		{"likes only", domain.EngagementCounts{Likes: 10}, 10},
		{"comments weigh double", domain.EngagementCounts{Comments: 10}, 20},
		{"shares weigh 1.5", domain.EngagementCounts{Shares: 10}, 15},
		{"poll votes weigh single", domain.EngagementCounts{PollVotes: 10}, 10},
		{"mixed", domain.EngagementCounts{Likes: 4, Comments: 3, Shares: 2, PollVotes: 1}, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// publishedAt == now, so decay is exactly 1.
			got := trending.Score(tt.counts, now, now)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_DecaysWithAge(t *testing.T) {
	now := time.Now()
	counts := domain.EngagementCounts{Likes: 100}

	fresh := trending.Score(counts, now, now)
	aged := trending.Score(counts, now.Add(-10*time.Hour), now)
	older := trending.Score(counts, now.Add(-20*time.Hour), now)

	if !(fresh > aged && aged > older) {
		t.Fatalf("score not monotonically decaying: fresh=%v aged=%v older=%v", fresh, aged, older)
	}

	want := 100 * math.Exp(-trending.DecayConstant*10)
	if math.Abs(aged-want) > epsilon {
		t.Errorf("10h score = %v, want %v", aged, want)
	}
}

func TestScore_FutureTimestampClampsToZeroAge(t *testing.T) {
	now := time.Now()
	counts := domain.EngagementCounts{Likes: 5}

	future := trending.Score(counts, now.Add(2*time.Hour), now)
	fresh := trending.Score(counts, now, now)

	if math.Abs(future-fresh) > epsilon {
		t.Fatalf("future-dated article scored %v, want %v (decay must never exceed 1)", future, fresh)
	}
}

func TestRank_DescendingAndStable(t *testing.T) {
	scored := []trending.Scored{
		{Article: domain.Article{ID: "low"}, Score: 1},
		{Article: domain.Article{ID: "tie-first"}, Score: 5},
		{Article: domain.Article{ID: "high"}, Score: 9},
		{Article: domain.Article{ID: "tie-second"}, Score: 5},
	}

	trending.Rank(scored)

	gotOrder := []string{scored[0].Article.ID, scored[1].Article.ID, scored[2].Article.ID, scored[3].Article.ID}
	wantOrder := []string{"high", "tie-first", "tie-second", "low"}

	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("rank order = %v, want %v", gotOrder, wantOrder)
		}
	}
}
