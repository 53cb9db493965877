package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/logger"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

type stubLLM struct {
	response string
	err      error
	prompt   string
}

func (s *stubLLM) Generate(ctx context.Context, messages types.MessageList) (string, error) {
	s.prompt = messages[len(messages)-1].Content
	return s.response, s.err
}

func (s *stubLLM) GetModelInfo() map[string]interface{} { return map[string]interface{}{} }
func (s *stubLLM) Close() error                         { return nil }

func TestExtractParsesCandidates(t *testing.T) {
	llm := &stubLLM{response: "Grows cotton on 3 acres in Vidarbha\nUses drip irrigation for vegetables"}
	extractor := NewLLMExtractor(llm, logger.NewTestLogger())

	got := extractor.Extract(context.Background(), "my cotton question", "an answer", nil)
	assert.Equal(t, []string{
		"Grows cotton on 3 acres in Vidarbha",
		"Uses drip irrigation for vegetables",
	}, got)
}

func TestExtractStripsListMarkers(t *testing.T) {
	llm := &stubLLM{response: "- Grows cotton on 3 acres\n* Has a borewell for irrigation\n1. Sells at the Akola mandi\n2) Prefers organic fertilizer"}
	extractor := NewLLMExtractor(llm, logger.NewTestLogger())

	got := extractor.Extract(context.Background(), "q", "a", nil)
	assert.Equal(t, []string{
		"Grows cotton on 3 acres",
		"Has a borewell for irrigation",
		"Sells at the Akola mandi",
		"Prefers organic fertilizer",
	}, got)
}

func TestExtractDropsShortLines(t *testing.T) {
	llm := &stubLLM{response: "ok\nGrows cotton on 3 acres\nyes"}
	extractor := NewLLMExtractor(llm, logger.NewTestLogger())

	got := extractor.Extract(context.Background(), "q", "a", nil)
	assert.Equal(t, []string{"Grows cotton on 3 acres"}, got)
}

func TestExtractHonorsRefusal(t *testing.T) {
	llm := &stubLLM{response: "no new insights"}
	extractor := NewLLMExtractor(llm, logger.NewTestLogger())

	got := extractor.Extract(context.Background(), "q", "a", nil)
	assert.Empty(t, got)
}

func TestExtractCapsAtFive(t *testing.T) {
	llm := &stubLLM{response: "Fact number one about crops\nFact number two about crops\nFact number three about crops\nFact number four about crops\nFact number five about crops\nFact number six about crops"}
	extractor := NewLLMExtractor(llm, logger.NewTestLogger())

	got := extractor.Extract(context.Background(), "q", "a", nil)
	assert.Len(t, got, 5)
}

func TestExtractDegradesOnFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("quota exceeded")}
	extractor := NewLLMExtractor(llm, logger.NewTestLogger())

	got := extractor.Extract(context.Background(), "q", "a", nil)
	assert.Nil(t, got)
}

func TestExtractIncludesExistingInsightsInPrompt(t *testing.T) {
	llm := &stubLLM{response: ""}
	extractor := NewLLMExtractor(llm, logger.NewTestLogger())

	existing := []types.InsightLine{{Text: "Grows cotton on 3 acres"}}
	extractor.Extract(context.Background(), "my question", "the answer", existing)

	require.NotEmpty(t, llm.prompt)
	assert.Contains(t, llm.prompt, "Grows cotton on 3 acres")
	assert.Contains(t, llm.prompt, "my question")
	assert.Contains(t, llm.prompt, "the answer")
}

func TestExtractSkipsEmptyExchange(t *testing.T) {
	llm := &stubLLM{response: "Should never be asked"}
	extractor := NewLLMExtractor(llm, logger.NewTestLogger())

	got := extractor.Extract(context.Background(), "", "  ", nil)
	assert.Nil(t, got)
	assert.Empty(t, llm.prompt)
}
