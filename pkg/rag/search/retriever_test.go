package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenglaafi-be/internal/apperrors"
	"tenglaafi-be/internal/pkg/logger"
	"tenglaafi-be/pkg/store"
)

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.calls++
	return f.vector, f.err
}

type fakeIndex struct {
	chunks []ScoredChunk
	err    error
}

func (f *fakeIndex) Search(ctx context.Context, queryVector []float32, limit int) ([]ScoredChunk, error) {
	return f.chunks, f.err
}

func (f *fakeIndex) Count(ctx context.Context) (int64, error) {
	return int64(len(f.chunks)), nil
}

type fakeLookup struct {
	docs map[uuid.UUID]*store.Document
}

func (f *fakeLookup) Get(ctx context.Context, id uuid.UUID) (*store.Document, error) {
	return f.docs[id], nil
}

func newTestLogger(t *testing.T) logger.ILogger {
	t.Helper()
	return logger.NewZapLogger(t.TempDir()+"/test.log", false)
}

func TestRetrieveOrdersBySimilarityAndAssignsRanks(t *testing.T) {
	docA, docB, docC := uuid.New(), uuid.New(), uuid.New()

	index := &fakeIndex{chunks: []ScoredChunk{
		{DocumentId: docB, Chunk: "feuilles de neem", Similarity: 0.71},
		{DocumentId: docA, Chunk: "traitement du paludisme", Similarity: 0.93},
		{DocumentId: docC, Chunk: "infusion d'artemisia", Similarity: 0.52},
	}}
	lookup := &fakeLookup{docs: map[uuid.UUID]*store.Document{
		docA: {Id: docA, Title: "Paludisme"},
		docB: {Id: docB, Title: "Neem"},
		docC: {Id: docC, Title: "Artemisia"},
	}}

	r := NewRetriever(&fakeEmbedder{vector: []float32{0.1}}, index, lookup, newTestLogger(t))

	passages, err := r.Retrieve(context.Background(), "comment soigner le paludisme", 3)
	require.NoError(t, err)
	require.Len(t, passages, 3)

	for i := range passages {
		assert.Equal(t, i+1, passages[i].Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, passages[i-1].Similarity, passages[i].Similarity)
		}
	}
	assert.Equal(t, "Paludisme", passages[0].Title)
}

func TestRetrieveDeduplicatesByDocumentKeepingBestChunk(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()

	index := &fakeIndex{chunks: []ScoredChunk{
		{DocumentId: docA, Chunk: "best chunk", Similarity: 0.9},
		{DocumentId: docA, Chunk: "weaker chunk", Similarity: 0.8},
		{DocumentId: docB, Chunk: "other doc", Similarity: 0.7},
	}}
	lookup := &fakeLookup{docs: map[uuid.UUID]*store.Document{
		docA: {Id: docA, Title: "A"},
		docB: {Id: docB, Title: "B"},
	}}

	r := NewRetriever(&fakeEmbedder{vector: []float32{0.1}}, index, lookup, newTestLogger(t))

	passages, err := r.Retrieve(context.Background(), "question", 3)
	require.NoError(t, err)
	require.Len(t, passages, 2)
	assert.Equal(t, "best chunk", passages[0].Chunk)
	assert.Equal(t, "other doc", passages[1].Chunk)
}

func TestRetrieveSkipsChunksWithMissingDocuments(t *testing.T) {
	known, orphan := uuid.New(), uuid.New()

	index := &fakeIndex{chunks: []ScoredChunk{
		{DocumentId: orphan, Chunk: "dangling", Similarity: 0.95},
		{DocumentId: known, Chunk: "kept", Similarity: 0.6},
	}}
	lookup := &fakeLookup{docs: map[uuid.UUID]*store.Document{
		known: {Id: known, Title: "Known"},
	}}

	r := NewRetriever(&fakeEmbedder{vector: []float32{0.1}}, index, lookup, newTestLogger(t))

	passages, err := r.Retrieve(context.Background(), "question", 2)
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "kept", passages[0].Chunk)
	assert.Equal(t, 1, passages[0].Rank)
}

func TestRetrieveClassifiesEmbeddingFailure(t *testing.T) {
	r := NewRetriever(
		&fakeEmbedder{err: errors.New("provider down")},
		&fakeIndex{},
		&fakeLookup{},
		newTestLogger(t),
	)

	_, err := r.Retrieve(context.Background(), "question", 3)
	require.Error(t, err)
	assert.True(t, apperrors.IsEmbeddingFailure(err))
}

func TestRetrieveClassifiesIndexFailure(t *testing.T) {
	r := NewRetriever(
		&fakeEmbedder{vector: []float32{0.1}},
		&fakeIndex{err: errors.New("connection refused")},
		&fakeLookup{},
		newTestLogger(t),
	)

	_, err := r.Retrieve(context.Background(), "question", 3)
	require.Error(t, err)
	assert.True(t, apperrors.IsIndexUnavailable(err))
}
