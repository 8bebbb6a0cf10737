package summarize

import (
	"strings"
	"unicode/utf8"

	"github.com/jonesrussell/feed-engine/internal/keywords"
)

const (
	// fallbackSummaryLength is the content truncation length for degraded
	// summaries.
	fallbackSummaryLength = 200

	// fallbackKeywordCount is the number of locally-extracted keywords.
	fallbackKeywordCount = 5

	// fallbackCategory is the generic tag applied when no model output is
	// available.
	fallbackCategory = "general"
)

// Fallback builds a deterministic degraded summary from the article text
// alone: truncated content, local frequency keywords, generic category. It
// cannot fail.
func Fallback(input ArticleInput) Generation {
	text := input.Content
	if strings.TrimSpace(text) == "" {
		text = input.Description
	}
	if strings.TrimSpace(text) == "" {
		text = input.Title
	}

	return Generation{
		Summary:  truncate(strings.TrimSpace(text), fallbackSummaryLength),
		Keywords: keywords.Extract(input.Title+" "+input.Description+" "+input.Content, fallbackKeywordCount),
		Category: fallbackCategory,
	}
}

// truncate cuts s to at most n runes, appending an ellipsis when trimmed.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
