package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// maxContentRunes bounds the article text included in the prompt.
const maxContentRunes = 6000

// Keyword count bounds the model is instructed to honor; responses outside
// them are treated as malformed.
const (
	minKeywords = 3
	maxKeywords = 5
)

const systemPrompt = `You are a news summarization assistant. Given a news article, respond with a JSON object and nothing else:
{"summary": "<concise 2-3 sentence summary>", "keywords": ["<3 to 5 single-word topic keywords>"], "category": "<one short category tag>"}
Do not wrap the JSON in markdown fences or add commentary.`

// ErrMalformedResponse is returned when the model output fails strict schema
// validation.
var ErrMalformedResponse = errors.New("malformed summarizer response")

// AnthropicGenerator generates summaries through the Anthropic Messages API.
type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewAnthropicGenerator creates a Generator backed by the Anthropic API.
func NewAnthropicGenerator(apiKey, model string, maxTokens int, timeout time.Duration) *AnthropicGenerator {
	return &AnthropicGenerator{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

// Generate makes a single summarization attempt with a bounded timeout.
func (g *AnthropicGenerator) Generate(ctx context.Context, input ArticleInput) (*Generation, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(g.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(input))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic generate: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		text.WriteString(block.Text)
	}

	return parseGeneration(text.String())
}

// buildPrompt assembles the user prompt, trimming over-long content on a
// rune boundary.
func buildPrompt(input ArticleInput) string {
	content := strings.Join(strings.Fields(input.Content), " ")
	if utf8.RuneCountInString(content) > maxContentRunes {
		runes := []rune(content)
		content = string(runes[:maxContentRunes]) + " [TRUNCATED]"
	}

	return fmt.Sprintf("Title: %s\nSource: %s\nDescription: %s\n\nContent:\n%s",
		input.Title, input.Source, input.Description, content)
}

// parseGeneration strictly validates the model output. Anything that does
// not decode into the expected shape is malformed; the caller falls back
// rather than trusting it.
func parseGeneration(raw string) (*Generation, error) {
	raw = stripFences(strings.TrimSpace(raw))

	var gen Generation
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&gen); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	gen.Summary = strings.TrimSpace(gen.Summary)
	gen.Category = strings.TrimSpace(strings.ToLower(gen.Category))

	if gen.Summary == "" || gen.Category == "" {
		return nil, fmt.Errorf("%w: empty summary or category", ErrMalformedResponse)
	}
	if len(gen.Keywords) < minKeywords || len(gen.Keywords) > maxKeywords {
		return nil, fmt.Errorf("%w: got %d keywords", ErrMalformedResponse, len(gen.Keywords))
	}

	return &gen, nil
}

// stripFences removes a surrounding markdown code fence if the model added
// one despite instructions.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
