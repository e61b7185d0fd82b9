package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenglaafi-be/internal/apperrors"
	"tenglaafi-be/internal/constant"
	"tenglaafi-be/internal/pkg/logger"
	"tenglaafi-be/pkg/llm"
	"tenglaafi-be/pkg/rag/cache"
	ragcontext "tenglaafi-be/pkg/rag/context"
	"tenglaafi-be/pkg/rag/response"
	"tenglaafi-be/pkg/rag/search"
	"tenglaafi-be/pkg/retry"
	"tenglaafi-be/pkg/store"
)

type stubEmbedder struct {
	calls int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	s.calls++
	return []float32{0.1, 0.2}, nil
}

type stubIndex struct {
	chunks     []search.ScoredChunk
	lastLimit  int
	searchDone int
}

func (s *stubIndex) Search(ctx context.Context, queryVector []float32, limit int) ([]search.ScoredChunk, error) {
	s.lastLimit = limit
	s.searchDone++
	if limit < len(s.chunks) {
		return s.chunks[:limit], nil
	}
	return s.chunks, nil
}

func (s *stubIndex) Count(ctx context.Context) (int64, error) {
	return int64(len(s.chunks)), nil
}

type stubLookup struct {
	docs map[uuid.UUID]*store.Document
}

func (s *stubLookup) Get(ctx context.Context, id uuid.UUID) (*store.Document, error) {
	return s.docs[id], nil
}

type stubLLM struct {
	answer string
	err    error
	calls  int
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: constant.ChatMessageRoleUser, Content: prompt}}, options...)
}

type queryFixture struct {
	service  IQueryService
	embedder *stubEmbedder
	index    *stubIndex
	llm      *stubLLM
	cache    *cache.ResultCache
}

func newQueryFixture(t *testing.T, index *stubIndex, lookup *stubLookup, llmStub *stubLLM) *queryFixture {
	t.Helper()

	log := logger.NewZapLogger(t.TempDir()+"/test.log", false)
	embedder := &stubEmbedder{}
	resultCache := cache.NewResultCache(100)

	svc := NewQueryService(
		search.NewRetriever(embedder, index, lookup, log),
		ragcontext.NewAssembler(3000, 800),
		response.NewGenerator(llmStub, log, time.Second, 2),
		resultCache,
		nil,
		QueryLimits{MinQuestionLength: 3, TopKDefault: 3, TopKMax: 10},
		log,
	)

	return &queryFixture{
		service:  svc,
		embedder: embedder,
		index:    index,
		llm:      llmStub,
		cache:    resultCache,
	}
}

func singleDocFixture(t *testing.T, llmStub *stubLLM) *queryFixture {
	t.Helper()

	docId := uuid.New()
	index := &stubIndex{chunks: []search.ScoredChunk{
		{DocumentId: docId, Chunk: "le neem traite le paludisme", Similarity: 0.9},
	}}
	lookup := &stubLookup{docs: map[uuid.UUID]*store.Document{
		docId: {Id: docId, Title: "Neem", Url: "https://example.org/neem"},
	}}
	return newQueryFixture(t, index, lookup, llmStub)
}

func TestAnswerCacheMissThenHit(t *testing.T) {
	f := singleDocFixture(t, &stubLLM{answer: "Le neem est utilisé contre le paludisme."})

	first, err := f.service.Answer(context.Background(), "Comment soigner le paludisme ?", 3)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	require.Len(t, first.Sources, 1)
	assert.Equal(t, "Neem", first.Sources[0].Title)

	second, err := f.service.Answer(context.Background(), "  comment soigner le paludisme ?  ", 3)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Text, second.Text)

	assert.Equal(t, 1, f.llm.calls, "cache hit must not reach the llm")
	assert.Equal(t, 1, f.embedder.calls, "cache hit must not reach the embedder")
}

func TestAnswerEmptyRetrievalReturnsCanonicalTextAndCaches(t *testing.T) {
	llmStub := &stubLLM{answer: "should never be called"}
	f := newQueryFixture(t, &stubIndex{}, &stubLookup{}, llmStub)

	answer, err := f.service.Answer(context.Background(), "question sans réponse", 3)
	require.NoError(t, err)
	assert.Equal(t, constant.AnswerNoRelevantDocuments, answer.Text)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, 0, llmStub.calls)

	cached, err := f.service.Answer(context.Background(), "question sans réponse", 3)
	require.NoError(t, err)
	assert.True(t, cached.CacheHit)
	assert.Equal(t, 1, f.embedder.calls)
}

func TestAnswerGenerationFailureAfterRetries(t *testing.T) {
	llmStub := &stubLLM{err: &retry.HTTPError{StatusCode: 503, Body: "overloaded"}}
	f := singleDocFixture(t, llmStub)

	_, err := f.service.Answer(context.Background(), "comment soigner le paludisme ?", 3)
	require.Error(t, err)
	assert.True(t, apperrors.IsGenerationFailure(err))
	assert.Equal(t, 2, llmStub.calls, "transient errors retry up to the attempt limit")

	_, ok := f.cache.Get(cache.Key("comment soigner le paludisme ?", 3))
	assert.False(t, ok, "failed generations must not be cached")
}

func TestAnswerInvalidQuestionMakesNoOutboundCalls(t *testing.T) {
	llmStub := &stubLLM{answer: "unused"}
	f := singleDocFixture(t, llmStub)

	for _, question := range []string{"", "   ", "ab"} {
		_, err := f.service.Answer(context.Background(), question, 3)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidQuery(err))
	}

	assert.Equal(t, 0, f.embedder.calls)
	assert.Equal(t, 0, llmStub.calls)
}

func TestAnswerClampsTopK(t *testing.T) {
	tests := []struct {
		name      string
		topK      int
		wantLimit int
	}{
		{name: "zero takes default", topK: 0, wantLimit: 3},
		{name: "above max clamps down", topK: 50, wantLimit: 10},
		{name: "negative clamps to one", topK: -2, wantLimit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := singleDocFixture(t, &stubLLM{answer: "réponse"})

			_, err := f.service.Answer(context.Background(), "comment soigner le paludisme ?", tt.topK)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, f.index.lastLimit)
		})
	}
}

func TestAnswerStripsCitationMarkersFromGeneratedText(t *testing.T) {
	f := singleDocFixture(t, &stubLLM{answer: "Le neem aide [Document 1] contre le paludisme."})

	answer, err := f.service.Answer(context.Background(), "comment soigner le paludisme ?", 3)
	require.NoError(t, err)
	assert.Equal(t, "Le neem aide contre le paludisme.", answer.Text)
}

func TestBatchAnswerIsolatesFailures(t *testing.T) {
	f := singleDocFixture(t, &stubLLM{answer: "réponse"})

	resp, err := f.service.BatchAnswer(context.Background(), []string{
		"comment soigner le paludisme ?",
		"ab",
		"quelles plantes contre la fièvre ?",
	}, 3)
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.NotNil(t, resp.Results[0].Response)
	assert.Empty(t, resp.Results[0].Error)

	assert.Nil(t, resp.Results[1].Response)
	assert.NotEmpty(t, resp.Results[1].Error)

	assert.NotNil(t, resp.Results[2].Response)
}

func TestBatchAnswerRejectsEmptyList(t *testing.T) {
	f := singleDocFixture(t, &stubLLM{answer: "réponse"})

	_, err := f.service.BatchAnswer(context.Background(), nil, 3)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidQuery(err))
}

func TestSimilarTopicsPrefixesAndDeduplicatesTitles(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()
	index := &stubIndex{chunks: []search.ScoredChunk{
		{DocumentId: docA, Chunk: "chunk a", Similarity: 0.9},
		{DocumentId: docB, Chunk: "chunk b", Similarity: 0.8},
	}}
	lookup := &stubLookup{docs: map[uuid.UUID]*store.Document{
		docA: {Id: docA, Title: "Paludisme"},
		docB: {Id: docB, Title: "Paludisme"},
	}}
	f := newQueryFixture(t, index, lookup, &stubLLM{})

	suggestions, err := f.service.SimilarTopics(context.Background(), "paludisme", 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, constant.SuggestionPrefix+"Paludisme", suggestions[0])
}

func TestClearCacheReportsEvictedEntries(t *testing.T) {
	f := singleDocFixture(t, &stubLLM{answer: "réponse"})

	_, err := f.service.Answer(context.Background(), "comment soigner le paludisme ?", 3)
	require.NoError(t, err)

	cleared := f.service.ClearCache(context.Background())
	assert.Equal(t, 1, cleared)
	assert.Equal(t, 0, f.cache.Len())
}
