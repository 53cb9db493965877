package assistant

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/chunkers"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/embedders"
	agrierrors "github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/logger"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/personalize"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/vecstore"
)

// fakeLLM returns a canned answer and records every prompt it sees
type fakeLLM struct {
	mu      sync.Mutex
	answer  string
	err     error
	block   chan struct{}
	prompts []string
}

func (f *fakeLLM) Generate(ctx context.Context, messages types.MessageList) (string, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	f.prompts = append(f.prompts, messages[len(messages)-1].Content)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeLLM) GetModelInfo() map[string]interface{} { return map[string]interface{}{} }
func (f *fakeLLM) Close() error                         { return nil }

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// fakeExtractor returns a fixed candidate list
type fakeExtractor struct {
	candidates []string
}

func (f *fakeExtractor) Extract(ctx context.Context, query, answer string, existing []types.InsightLine) []string {
	return f.candidates
}

// syncScheduler runs submitted jobs inline so tests see their effects
// immediately
type syncScheduler struct {
	errs []error
}

func (s *syncScheduler) Start(ctx context.Context) error { return nil }
func (s *syncScheduler) Stop(ctx context.Context) error  { return nil }
func (s *syncScheduler) Submit(key string, job func(ctx context.Context) error) error {
	if err := job(context.Background()); err != nil {
		s.errs = append(s.errs, err)
	}
	return nil
}

type fixture struct {
	service  *Service
	store    *vecstore.MemoryStore
	insights *personalize.FileInsightStore
	llm      *fakeLLM
	sched    *syncScheduler
}

func newFixture(t *testing.T, llm *fakeLLM, extractor *fakeExtractor) *fixture {
	t.Helper()
	ctx := context.Background()

	embedder, err := embedders.NewHashEmbedder(nil)
	require.NoError(t, err)

	store, err := vecstore.NewMemoryStore(&vecstore.StoreConfig{
		Backend:   types.BackendMemory,
		Dimension: embedder.GetDimension(),
	})
	require.NoError(t, err)
	require.NoError(t, store.Initialize(ctx))

	chunker, err := chunkers.NewWindowChunker(nil)
	require.NoError(t, err)

	log := logger.NewTestLogger()
	profiles, err := personalize.NewFileProfileStore(t.TempDir(), log)
	require.NoError(t, err)
	insightStore, err := personalize.NewFileInsightStore(t.TempDir(), log)
	require.NoError(t, err)

	sched := &syncScheduler{}
	service, err := NewService(ServiceDeps{
		Embedder:  embedder,
		Store:     store,
		LLM:       llm,
		Chunker:   chunker,
		Profiles:  profiles,
		Insights:  insightStore,
		Extractor: extractor,
		Scheduler: sched,
		Logger:    log,
	})
	require.NoError(t, err)

	return &fixture{service: service, store: store, insights: insightStore, llm: llm, sched: sched}
}

func seedEntry(t *testing.T, f *fixture, id, owner string, kind types.SourceKind, title, content string) {
	t.Helper()
	embedder, err := embedders.NewHashEmbedder(nil)
	require.NoError(t, err)
	vec, err := embedder.Embed(context.Background(), content)
	require.NoError(t, err)

	var entry *types.VectorEntry
	if owner == "" {
		entry = types.NewVectorEntry(id, vec, types.EntryMetadata{Title: title, Content: content})
	} else {
		entry = types.NewOwnedVectorEntry(id, owner, kind, vec, types.EntryMetadata{Title: title, Content: content})
	}
	require.NoError(t, f.store.Insert(context.Background(), entry))
}

func TestAskEndToEnd(t *testing.T) {
	llm := &fakeLLM{answer: "Sow wheat in November after the monsoon retreats."}
	f := newFixture(t, llm, &fakeExtractor{})

	seedEntry(t, f, "g1", "", types.SourceKindGeneral, "Rice cultivation",
		"rice cultivation needs standing water and clayey soil")
	seedEntry(t, f, "p1", "u1", types.SourceKindProfile, "My farm",
		"I grow wheat on 5 acres of sandy loam")

	resp, err := f.service.Ask(context.Background(), &types.AskRequest{
		Query:   "How do I grow wheat?",
		OwnerID: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, llm.answer, resp.Answer)
	assert.Equal(t, types.IntentCrop, resp.Intent)
	assert.Contains(t, resp.Sources, "My farm")

	prompt := llm.lastPrompt()
	assert.Contains(t, prompt, "How do I grow wheat?")
	assert.Contains(t, prompt, "[Your farm]")
	assert.Contains(t, prompt, "I grow wheat on 5 acres")
}

func TestBuildPromptIncludesRankedContext(t *testing.T) {
	f := newFixture(t, &fakeLLM{answer: "x"}, &fakeExtractor{})

	ranked := rankCandidates([]*types.SearchResult{
		result("g1", "", types.SourceKindGeneral, 0.9, "Wheat sowing"),
		result("p1", "u1", types.SourceKindProfile, 0.8, "My farm"),
	}, "u1", 1.15, 4)

	prompt := f.service.buildPrompt("when to sow wheat", types.Classification{Intent: types.IntentCrop}, ranked)
	assert.Contains(t, prompt, "Question category: CROP")
	assert.Contains(t, prompt, "Context:")
	assert.Contains(t, prompt, "[Your farm] My farm")
	assert.Contains(t, prompt, "Wheat sowing")
	assert.Contains(t, prompt, "Question: when to sow wheat")

	// No retrieved context leaves the prompt without a context block.
	bare := f.service.buildPrompt("hello", types.Classification{Intent: types.IntentUnknown}, nil)
	assert.NotContains(t, bare, "Context:")
}

func TestAskValidatesQuery(t *testing.T) {
	f := newFixture(t, &fakeLLM{answer: "x"}, &fakeExtractor{})

	_, err := f.service.Ask(context.Background(), &types.AskRequest{Query: "  "})
	assert.Error(t, err)

	_, err = f.service.Ask(context.Background(), nil)
	assert.Error(t, err)
}

func TestAskBusyRejection(t *testing.T) {
	block := make(chan struct{})
	llm := &fakeLLM{answer: "slow answer", block: block}
	f := newFixture(t, llm, &fakeExtractor{})

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := f.service.Ask(context.Background(), &types.AskRequest{Query: "first question about wheat"})
		done <- err
	}()

	<-started
	// Give the first Ask a moment to take the in-flight slot.
	require.Eventually(t, func() bool {
		_, err := f.service.Ask(context.Background(), &types.AskRequest{Query: "second question"})
		return agrierrors.IsBusy(err)
	}, time.Second, 5*time.Millisecond)

	close(block)
	require.NoError(t, <-done)

	// After the first completes, the service accepts questions again.
	_, err := f.service.Ask(context.Background(), &types.AskRequest{Query: "third question about rice"})
	assert.NoError(t, err)
}

func TestAskSurfacesLLMFailure(t *testing.T) {
	llm := &fakeLLM{err: agrierrors.NewLLMError("backend unreachable")}
	f := newFixture(t, llm, &fakeExtractor{candidates: []string{"should never be stored anywhere"}})

	_, err := f.service.Ask(context.Background(), &types.AskRequest{Query: "wheat sowing", OwnerID: "u1"})
	require.Error(t, err)

	// A failed answer never triggers the background insight update.
	lines, listErr := f.insights.List("u1")
	require.NoError(t, listErr)
	assert.Empty(t, lines)
}

func TestAskTriggersInsightUpdate(t *testing.T) {
	llm := &fakeLLM{answer: "Tomatoes need staking and regular watering."}
	extractor := &fakeExtractor{candidates: []string{"Grows tomatoes on 5 acres"}}
	f := newFixture(t, llm, extractor)

	_, err := f.service.Ask(context.Background(), &types.AskRequest{
		Query:   "How to support my tomato plants?",
		OwnerID: "u1",
	})
	require.NoError(t, err)
	assert.Empty(t, f.sched.errs)

	lines, err := f.insights.List("u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Grows tomatoes on 5 acres", lines[0].Text)

	// The rebuilt insight vectors are searchable under the owner.
	embedder, err := embedders.NewHashEmbedder(nil)
	require.NoError(t, err)
	vec, err := embedder.Embed(context.Background(), "tomatoes acres")
	require.NoError(t, err)
	results, err := f.store.Search(context.Background(), vec, 10, 0.1, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, types.SourceKindInsights, results[0].SourceKind)
}

func TestAskDuplicateInsightSkipsRebuild(t *testing.T) {
	llm := &fakeLLM{answer: "answer"}
	extractor := &fakeExtractor{candidates: []string{"Grows tomatoes on 5 acres"}}
	f := newFixture(t, llm, extractor)

	ok, err := f.insights.Append("u1", "Grows tomatoes on 5 acres")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.service.Ask(context.Background(), &types.AskRequest{
		Query:   "tomato staking advice",
		OwnerID: "u1",
	})
	require.NoError(t, err)

	// Nothing new was accepted, so no insight vectors were built.
	count, err := f.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAskAnonymousSkipsInsights(t *testing.T) {
	llm := &fakeLLM{answer: "general advice"}
	extractor := &fakeExtractor{candidates: []string{"Should not be stored for anyone"}}
	f := newFixture(t, llm, extractor)

	_, err := f.service.Ask(context.Background(), &types.AskRequest{Query: "when to sow wheat"})
	require.NoError(t, err)

	count, err := f.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUpdateProfileRebuildsVectors(t *testing.T) {
	llm := &fakeLLM{answer: "x"}
	f := newFixture(t, llm, &fakeExtractor{})

	ctx := context.Background()
	require.NoError(t, f.service.UpdateProfile(ctx, "u1", "grows wheat and mustard on 5 acres near Indore"))

	embedder, err := embedders.NewHashEmbedder(nil)
	require.NoError(t, err)
	vec, err := embedder.Embed(ctx, "wheat mustard acres")
	require.NoError(t, err)

	results, err := f.store.Search(ctx, vec, 10, 0.1, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, types.SourceKindProfile, results[0].SourceKind)

	// An empty rewrite clears the vectors.
	require.NoError(t, f.service.UpdateProfile(ctx, "u1", ""))
	results, err = f.store.Search(ctx, vec, 10, 0.1, "u1")
	require.NoError(t, err)
	assert.Empty(t, results)
}
