// Package trending converts engagement counts and article age into a single
// time-decayed popularity score.
package trending

import (
	"math"
	"sort"
	"time"

	"github.com/jonesrussell/feed-engine/internal/domain"
)

// Scoring constants. The formula is a tested contract; changing any weight
// changes ranking behavior for every caller.
const (
	// DecayConstant is k in exp(-k * ageHours).
	DecayConstant = 0.08

	likeWeight     = 1.0
	commentWeight  = 2.0
	shareWeight    = 1.5
	pollVoteWeight = 1.0
)

// Score computes the trending score for one article.
//
//	ageHours = max(0, now - publishedAt)   // future timestamps clamp to zero
//	raw      = likes + 2*comments + 1.5*shares + pollVotes
//	score    = raw * exp(-0.08 * ageHours)
func Score(counts domain.EngagementCounts, publishedAt, now time.Time) float64 {
	ageHours := now.Sub(publishedAt).Hours()
	if ageHours < 0 {
		// Clock skew from the source; never let decay exceed 1.
		ageHours = 0
	}

	raw := float64(counts.Likes)*likeWeight +
		float64(counts.Comments)*commentWeight +
		float64(counts.Shares)*shareWeight +
		float64(counts.PollVotes)*pollVoteWeight

	return raw * math.Exp(-DecayConstant*ageHours)
}

// Scored pairs an article with its score for ranking.
type Scored struct {
	Article domain.Article
	Score   float64
}

// Rank sorts scored articles by descending score. The sort is stable: equal
// scores keep their original fetch order, with no secondary key.
func Rank(scored []Scored) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}
