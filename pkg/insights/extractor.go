// Package insights mines stable personal facts from conversations
package insights

import (
	"context"
	"strings"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

const (
	// maxInsightsPerExchange caps how many insights one exchange can yield
	maxInsightsPerExchange = 5

	// minInsightLength drops fragments too short to be a usable fact
	minInsightLength = 10
)

const extractionSystemPrompt = `You analyze a conversation between a farmer and an agricultural assistant.
Extract stable, personal facts about the farmer worth remembering for future conversations.

Rules:
- Only durable facts about the farmer: crops grown, land size, location, soil type, equipment, recurring problems, preferences.
- No transient details (today's weather, a one-off price question).
- No facts already present in the known insights below.
- One fact per line, plain text, no bullets or numbering.
- If there is nothing new to record, reply with exactly: no new insights`

// LLMExtractor derives candidate insights by asking a chat model to read
// the latest exchange. Extraction is best effort: any model failure yields
// an empty result rather than an error.
type LLMExtractor struct {
	llm    interfaces.LLM
	logger interfaces.Logger
}

// NewLLMExtractor creates an extractor backed by the given chat model
func NewLLMExtractor(llm interfaces.LLM, logger interfaces.Logger) *LLMExtractor {
	return &LLMExtractor{llm: llm, logger: logger}
}

// Extract returns up to five candidate insight strings from the exchange
func (e *LLMExtractor) Extract(ctx context.Context, query, answer string, existing []types.InsightLine) []string {
	if strings.TrimSpace(query) == "" && strings.TrimSpace(answer) == "" {
		return nil
	}

	var prompt strings.Builder
	prompt.WriteString("Known insights:\n")
	if len(existing) == 0 {
		prompt.WriteString("(none)\n")
	}
	for _, line := range existing {
		prompt.WriteString("- ")
		prompt.WriteString(line.Text)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\nFarmer asked: ")
	prompt.WriteString(query)
	prompt.WriteString("\nAssistant answered: ")
	prompt.WriteString(answer)

	messages := types.MessageList{
		{Role: types.MessageRoleSystem, Content: extractionSystemPrompt},
		{Role: types.MessageRoleUser, Content: prompt.String()},
	}

	raw, err := e.llm.Generate(ctx, messages)
	if err != nil {
		e.logger.Warn("insight extraction failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	return parseInsightCandidates(raw)
}

// parseInsightCandidates cleans model output into plain insight strings
func parseInsightCandidates(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		text := stripListMarker(line)
		if text == "" || len([]rune(text)) < minInsightLength {
			continue
		}
		if isRefusalMarker(text) {
			continue
		}
		out = append(out, text)
		if len(out) == maxInsightsPerExchange {
			break
		}
	}
	return out
}

// stripListMarker removes bullet and numbering prefixes models add despite
// instructions ("- ", "* ", "1. ", "2)")
func stripListMarker(line string) string {
	text := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(text, marker) {
			return strings.TrimSpace(text[len(marker):])
		}
	}

	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i > 0 && i < len(text) && (text[i] == '.' || text[i] == ')') {
		return strings.TrimSpace(text[i+1:])
	}
	return text
}

func isRefusalMarker(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "no new insight")
}

var _ interfaces.InsightExtractor = (*LLMExtractor)(nil)
