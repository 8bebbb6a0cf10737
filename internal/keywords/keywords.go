// Package keywords provides the local keyword extraction shared by the
// personalization profile builder and the summarization fallback.
package keywords

import (
	"sort"
	"strings"
	"unicode"
)

// minTokenLength drops short noise tokens before counting.
const minTokenLength = 3

// stopwords is the fixed English stopword set applied before counting.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "have": {}, "his": {},
	"him": {}, "she": {}, "they": {}, "them": {}, "their": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "with": {}, "from": {}, "into": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "been": {}, "were": {},
	"than": {}, "then": {}, "when": {}, "where": {}, "which": {}, "while": {},
	"what": {}, "who": {}, "whom": {}, "why": {}, "how": {}, "about": {},
	"after": {}, "before": {}, "over": {}, "under": {}, "more": {}, "most": {},
	"some": {}, "such": {}, "only": {}, "other": {}, "also": {}, "just": {},
	"said": {}, "says": {}, "new": {}, "its": {}, "there": {},
	"here": {}, "during": {}, "between": {}, "against": {}, "because": {},
}

// Tokenize lower-cases text and splits it on non-alphanumeric runes,
// dropping stopwords and short tokens.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLength {
			continue
		}
		if _, skip := stopwords[f]; skip {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Extract returns the top-n tokens of text by frequency. Ties break on first
// occurrence, so the result is deterministic for a given input.
func Extract(text string, n int) []string {
	tokens := Tokenize(text)

	freq := make(map[string]int, len(tokens))
	firstSeen := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		if _, seen := freq[tok]; !seen {
			firstSeen[tok] = i
		}
		freq[tok]++
	}

	return TopN(freq, firstSeen, n)
}

// TopN ranks the keys of freq by descending count, breaking ties by the
// firstSeen position, and returns at most n keys.
func TopN(freq map[string]int, firstSeen map[string]int, n int) []string {
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return firstSeen[keys[i]] < firstSeen[keys[j]]
	})

	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
