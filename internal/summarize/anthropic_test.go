package summarize

import (
	"errors"
	"strings"
	"testing"
)

func TestParseGeneration_Valid(t *testing.T) {
	raw := `{"summary": "Council approved the budget.", "keywords": ["council", "budget", "vote"], "category": "Politics"}`

	gen, err := parseGeneration(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.Summary != "Council approved the budget." {
		t.Errorf("summary = %q", gen.Summary)
	}
	if gen.Category != "politics" {
		t.Errorf("category not lowercased: %q", gen.Category)
	}
	if len(gen.Keywords) != 3 {
		t.Errorf("keywords = %v", gen.Keywords)
	}
}

func TestParseGeneration_StripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"summary\": \"s\", \"keywords\": [\"a\", \"b\", \"c\"], \"category\": \"news\"}\n```"

	gen, err := parseGeneration(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.Summary != "s" {
		t.Errorf("summary = %q", gen.Summary)
	}
}

func TestParseGeneration_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "Here is your summary: the council met."},
		{"unknown field", `{"summary": "s", "keywords": ["a","b","c"], "category": "n", "extra": 1}`},
		{"empty summary", `{"summary": " ", "keywords": ["a","b","c"], "category": "n"}`},
		{"empty category", `{"summary": "s", "keywords": ["a","b","c"], "category": ""}`},
		{"too few keywords", `{"summary": "s", "keywords": ["a"], "category": "n"}`},
		{"too many keywords", `{"summary": "s", "keywords": ["a","b","c","d","e","f"], "category": "n"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseGeneration(tt.raw)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestBuildPrompt_TruncatesContent(t *testing.T) {
	input := ArticleInput{
		Title:   "t",
		Content: strings.Repeat("x ", maxContentRunes),
	}

	prompt := buildPrompt(input)

	if !strings.Contains(prompt, "[TRUNCATED]") {
		t.Fatal("expected truncation marker in over-long prompt")
	}
}

func TestBuildPrompt_CollapsesWhitespace(t *testing.T) {
	input := ArticleInput{Title: "t", Content: "line one\n\n\tline   two"}

	prompt := buildPrompt(input)

	if !strings.Contains(prompt, "line one line two") {
		t.Fatalf("whitespace not collapsed: %q", prompt)
	}
}
