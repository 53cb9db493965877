package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/config"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

const systemPersona = `You are AgriAssist, a practical advisor for Indian farmers.
Answer in simple, direct language a farmer can act on. Prefer the provided
context over general knowledge, and when context from the farmer's own
records is present, tailor the advice to it. If the context does not cover
the question, say so and give your best general guidance.`

// Service runs the full answer pipeline: classify, embed, retrieve, build
// context, generate. One question is processed at a time; a second Ask
// while one is in flight is rejected as busy.
type Service struct {
	embedder  interfaces.Embedder
	store     interfaces.VectorStore
	llm       interfaces.LLM
	chunker   interfaces.Chunker
	profiles  interfaces.ProfileStore
	insights  interfaces.InsightStore
	extractor interfaces.InsightExtractor
	scheduler interfaces.Scheduler
	seasons   SeasonProvider
	logger    interfaces.Logger
	metrics   interfaces.Metrics

	classifier *IntentClassifier
	retrieval  *config.RetrievalConfig

	inFlight atomic.Bool
}

// ServiceDeps bundles the collaborators a Service needs
type ServiceDeps struct {
	Embedder  interfaces.Embedder
	Store     interfaces.VectorStore
	LLM       interfaces.LLM
	Chunker   interfaces.Chunker
	Profiles  interfaces.ProfileStore
	Insights  interfaces.InsightStore
	Extractor interfaces.InsightExtractor
	Scheduler interfaces.Scheduler
	Seasons   SeasonProvider
	Logger    interfaces.Logger
	Metrics   interfaces.Metrics
	Retrieval *config.RetrievalConfig
}

// NewService creates the assistant service
func NewService(deps ServiceDeps) (*Service, error) {
	switch {
	case deps.Embedder == nil:
		return nil, errors.NewConfigError("embedder is required")
	case deps.Store == nil:
		return nil, errors.NewConfigError("vector store is required")
	case deps.LLM == nil:
		return nil, errors.NewConfigError("llm is required")
	case deps.Chunker == nil:
		return nil, errors.NewConfigError("chunker is required")
	case deps.Insights == nil:
		return nil, errors.NewConfigError("insight store is required")
	case deps.Extractor == nil:
		return nil, errors.NewConfigError("insight extractor is required")
	case deps.Scheduler == nil:
		return nil, errors.NewConfigError("scheduler is required")
	case deps.Logger == nil:
		return nil, errors.NewConfigError("logger is required")
	}
	if deps.Seasons == nil {
		deps.Seasons = NewCalendarSeasonProvider()
	}
	if deps.Retrieval == nil {
		deps.Retrieval = config.NewRetrievalConfig()
	}

	return &Service{
		embedder:   deps.Embedder,
		store:      deps.Store,
		llm:        deps.LLM,
		chunker:    deps.Chunker,
		profiles:   deps.Profiles,
		insights:   deps.Insights,
		extractor:  deps.Extractor,
		scheduler:  deps.Scheduler,
		seasons:    deps.Seasons,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		classifier: NewIntentClassifier(),
		retrieval:  deps.Retrieval,
	}, nil
}

// Ask answers one farmer question. The pipeline is stateless across calls;
// no conversation memory is kept.
func (s *Service) Ask(ctx context.Context, req *types.AskRequest) (*types.AskResponse, error) {
	if req == nil || strings.TrimSpace(req.Query) == "" {
		return nil, errors.NewMissingFieldError("query")
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, errors.NewBusyError("ask")
	}
	defer s.inFlight.Store(false)

	started := time.Now()
	classification := s.classifier.Classify(req.Query)
	s.logger.Debug("query classified", map[string]interface{}{
		"intent":     classification.Intent,
		"confidence": classification.Confidence,
	})

	queryVec, err := s.embedder.Embed(ctx, req.Query)
	if err != nil {
		return nil, errors.NewWithCause(types.ErrorTypeInternal, errors.ErrCodeEmbedError,
			"failed to embed query", err)
	}

	var ranked []*types.SearchResult
	if !queryVec.IsZero() {
		candidates, err := s.store.Search(ctx, queryVec, s.retrieval.CandidateLimit, s.retrieval.MinScore, "")
		if err != nil {
			return nil, errors.NewStoreErrorWithCause("retrieval failed", err)
		}
		ranked = rankCandidates(candidates, req.OwnerID, s.retrieval.OwnerBoost, s.retrieval.TopK)
	}

	prompt := s.buildPrompt(req.Query, classification, ranked)
	answer, err := s.llm.Generate(ctx, types.MessageList{
		{Role: types.MessageRoleSystem, Content: systemPersona},
		{Role: types.MessageRoleUser, Content: prompt},
	})
	if err != nil {
		s.count("ask_failed", classification.Intent)
		return nil, err
	}

	s.count("ask_answered", classification.Intent)
	if s.metrics != nil {
		s.metrics.Timer("ask_duration", time.Since(started).Seconds(), nil)
	}

	s.scheduleInsightUpdate(req.OwnerID, req.Query, answer)

	return &types.AskResponse{
		Answer:    answer,
		Intent:    classification.Intent,
		Sources:   sourceTitles(ranked),
		Timestamp: time.Now(),
	}, nil
}

func (s *Service) buildPrompt(query string, classification types.Classification, ranked []*types.SearchResult) string {
	_, seasonDesc := s.seasons.CurrentSeason()

	var b strings.Builder
	fmt.Fprintf(&b, "Question category: %s\n", classification.Intent)
	fmt.Fprintf(&b, "Current season: %s\n\n", seasonDesc)

	if block := buildContextBlock(ranked); block != "" {
		b.WriteString("Context:\n")
		b.WriteString(block)
		b.WriteString("\n\n")
	}

	b.WriteString("Question: ")
	b.WriteString(query)
	return b.String()
}

// scheduleInsightUpdate runs insight extraction and reindexing in the
// background. Updates for the same owner are serialized by the scheduler;
// the caller never waits on them.
func (s *Service) scheduleInsightUpdate(ownerID, query, answer string) {
	if ownerID == "" {
		return
	}

	err := s.scheduler.Submit("insights:"+ownerID, func(ctx context.Context) error {
		return s.updateInsights(ctx, ownerID, query, answer)
	})
	if err != nil {
		s.logger.Warn("insight update not scheduled", map[string]interface{}{
			"owner_id": ownerID,
			"error":    err.Error(),
		})
	}
}

// updateInsights extracts new facts from the exchange and, when anything
// new sticks, rebuilds the owner's insight vectors from the full log.
func (s *Service) updateInsights(ctx context.Context, ownerID, query, answer string) error {
	existing, err := s.insights.List(ownerID)
	if err != nil {
		return err
	}

	accepted := 0
	for _, candidate := range s.extractor.Extract(ctx, query, answer, existing) {
		ok, err := s.insights.Append(ownerID, candidate)
		if err != nil {
			return err
		}
		if ok {
			accepted++
		}
	}
	if accepted == 0 {
		return nil
	}

	s.logger.Info("rebuilding insight vectors", map[string]interface{}{
		"owner_id": ownerID,
		"accepted": accepted,
	})
	return s.rebuildInsightVectors(ctx, ownerID)
}

// rebuildInsightVectors replaces all insight-kind entries for the owner
// with a fresh chunking and embedding of the complete log.
func (s *Service) rebuildInsightVectors(ctx context.Context, ownerID string) error {
	log, err := s.insights.Read(ownerID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteByOwnerKind(ctx, ownerID, types.SourceKindInsights); err != nil {
		return err
	}
	if strings.TrimSpace(log) == "" {
		return nil
	}

	chunks, err := s.chunker.Chunk(ctx, log)
	if err != nil {
		return err
	}
	vectors, err := s.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return err
	}

	entries := make([]*types.VectorEntry, 0, len(chunks))
	for i, chunk := range chunks {
		entry := types.NewOwnedVectorEntry("", ownerID, types.SourceKindInsights, vectors[i], types.EntryMetadata{
			Title:     fmt.Sprintf("Insights %d", i+1),
			Content:   chunk,
			Category:  "insights",
			Timestamp: time.Now(),
		})
		entries = append(entries, entry)
	}
	return s.store.InsertBatch(ctx, entries)
}

// UpdateProfile overwrites the farmer's profile text and rebuilds the
// matching profile-kind vector entries.
func (s *Service) UpdateProfile(ctx context.Context, ownerID, text string) error {
	if s.profiles == nil {
		return errors.NewConfigError("profile store is not configured")
	}
	if err := s.profiles.Write(ownerID, text); err != nil {
		return err
	}

	if err := s.store.DeleteByOwnerKind(ctx, ownerID, types.SourceKindProfile); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	chunks, err := s.chunker.Chunk(ctx, text)
	if err != nil {
		return err
	}
	vectors, err := s.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return err
	}

	entries := make([]*types.VectorEntry, 0, len(chunks))
	for i, chunk := range chunks {
		entries = append(entries, types.NewOwnedVectorEntry("", ownerID, types.SourceKindProfile, vectors[i], types.EntryMetadata{
			Title:     fmt.Sprintf("Profile %d", i+1),
			Content:   chunk,
			Category:  "profile",
			Timestamp: time.Now(),
		}))
	}
	return s.store.InsertBatch(ctx, entries)
}

// Close releases held resources
func (s *Service) Close() error {
	return s.llm.Close()
}

func (s *Service) count(name string, intent types.Intent) {
	if s.metrics == nil {
		return
	}
	s.metrics.Counter(name, 1, map[string]string{"intent": string(intent)})
}

var _ interfaces.Assistant = (*Service)(nil)
