// Package personalization derives per-user preference profiles from recent
// engagement history and reweights trending scores with them.
package personalization

import (
	"strings"

	"github.com/jonesrussell/feed-engine/internal/domain"
	"github.com/jonesrussell/feed-engine/internal/keywords"
)

const (
	// WindowDays is the trailing engagement window profiles are built from.
	WindowDays = 14

	// topFacets caps the city/source/category sets; topKeywords caps the
	// keyword set. Membership in a set is what drives boosts, not rank.
	topFacets   = 5
	topKeywords = 10
)

// BuildProfile tallies the caller's engaged articles by city, source,
// category and extracted keywords, returning the frequency-ranked top sets.
// Raw frequency only: there is no recency decay inside the profile.
func BuildProfile(engaged []domain.EngagedArticle) domain.PreferenceProfile {
	cities := newTally()
	sources := newTally()
	categories := newTally()
	kw := newTally()

	for _, e := range engaged {
		cities.add(strings.ToLower(e.LocationName))
		sources.add(strings.ToLower(e.SourceName))
		categories.add(strings.ToLower(e.Category))

		text := e.Title + " " + e.Description
		if e.AISummary != nil {
			text += " " + *e.AISummary
		}
		for _, tok := range keywords.Tokenize(text) {
			kw.add(tok)
		}
	}

	return domain.PreferenceProfile{
		Cities:     cities.top(topFacets),
		Sources:    sources.top(topFacets),
		Categories: categories.top(topFacets),
		Keywords:   kw.top(topKeywords),
	}
}

// tally counts occurrences while remembering first-seen order for
// deterministic tie-breaking.
type tally struct {
	freq      map[string]int
	firstSeen map[string]int
	n         int
}

func newTally() *tally {
	return &tally{
		freq:      make(map[string]int),
		firstSeen: make(map[string]int),
	}
}

func (t *tally) add(key string) {
	if key == "" {
		return
	}
	if _, seen := t.freq[key]; !seen {
		t.firstSeen[key] = t.n
	}
	t.freq[key]++
	t.n++
}

func (t *tally) top(n int) []string {
	return keywords.TopN(t.freq, t.firstSeen, n)
}
