package personalization

import (
	"strings"

	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/keywords"
)

// Boost multipliers. Fixed domain constants; there is deliberately no
// configuration surface for these.
const (
	cityBoost     = 1.3
	sourceBoost   = 1.2
	categoryBoost = 1.15

	// keywordBoostStep compounds linearly per distinct matched keyword:
	// score *= 1 + keywordBoostStep*matchCount. This is intentionally not
	// 1.1^matchCount.
	keywordBoostStep = 0.1
)

// Personalize reweights a base trending score against the caller's profile.
// Boosts stack multiplicatively in the order city, source, category,
// keywords; each is independent and optional. An empty profile returns the
// base score exactly, so anonymous and new users fall back to pure trending
// order. The article and base score are never mutated for other callers.
func Personalize(article domain.Article, baseScore float64, profile domain.PreferenceProfile) float64 {
	if profile.Empty() {
		return baseScore
	}

	score := baseScore

	if containsFold(profile.Cities, article.LocationName) {
		score *= cityBoost
	}
	if containsFold(profile.Sources, article.SourceName) {
		score *= sourceBoost
	}
	if containsFold(profile.Categories, article.Category) {
		score *= categoryBoost
	}

	if matches := keywordMatches(article, profile.Keywords); matches > 0 {
		score *= 1 + keywordBoostStep*float64(matches)
	}

	return score
}

// keywordMatches counts the distinct profile keywords present in the
// article's title, description and summary.
func keywordMatches(article domain.Article, profileKeywords []string) int {
	if len(profileKeywords) == 0 {
		return 0
	}

	text := article.Title + " " + article.Description
	if article.AISummary != nil {
		text += " " + *article.AISummary
	}

	tokens := make(map[string]struct{})
	for _, tok := range keywords.Tokenize(text) {
		tokens[tok] = struct{}{}
	}

	matches := 0
	for _, kw := range profileKeywords {
		if _, ok := tokens[kw]; ok {
			matches++
		}
	}
	return matches
}

func containsFold(set []string, value string) bool {
	for _, s := range set {
		if strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}
