package search

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"tenglaafi-be/internal/apperrors"
	"tenglaafi-be/internal/constant"
	"tenglaafi-be/internal/pkg/logger"
	"tenglaafi-be/pkg/store"
)

// ScoredChunk is a raw vector search hit before document hydration.
type ScoredChunk struct {
	DocumentId uuid.UUID
	Chunk      string
	Similarity float64
}

// VectorIndex abstracts the similarity search backend.
type VectorIndex interface {
	Search(ctx context.Context, queryVector []float32, limit int) ([]ScoredChunk, error)
	Count(ctx context.Context) (int64, error)
}

// DocumentLookup resolves document metadata for retrieved chunks.
type DocumentLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*store.Document, error)
}

// Embedder turns text into a vector, with caching and retries behind it.
type Embedder interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
}

type Retriever struct {
	embedder Embedder
	index    VectorIndex
	lookup   DocumentLookup
	logger   logger.ILogger
}

func NewRetriever(embedder Embedder, index VectorIndex, lookup DocumentLookup, log logger.ILogger) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		lookup:   lookup,
		logger:   log,
	}
}

// Retrieve embeds the question and returns the top passages, deduplicated per
// document, ordered by descending similarity with 1-based ranks.
func (r *Retriever) Retrieve(ctx context.Context, question string, topK int) ([]store.RetrievedPassage, error) {
	queryVector, err := r.embedder.Embed(ctx, question, constant.EmbeddingTaskQuery)
	if err != nil {
		return nil, apperrors.EmbeddingFailure("failed to embed question", err)
	}

	chunks, err := r.index.Search(ctx, queryVector, topK)
	if err != nil {
		return nil, apperrors.IndexUnavailable("vector search failed", err)
	}

	// The backend orders by similarity already; re-sort to keep the
	// contract independent of the index implementation.
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Similarity > chunks[j].Similarity
	})

	seen := make(map[uuid.UUID]bool, len(chunks))
	passages := make([]store.RetrievedPassage, 0, len(chunks))

	for _, chunk := range chunks {
		if seen[chunk.DocumentId] {
			continue
		}
		seen[chunk.DocumentId] = true

		doc, err := r.lookup.Get(ctx, chunk.DocumentId)
		if err != nil || doc == nil {
			// Orphaned embedding. Skip it, the remaining hits still answer.
			r.logger.Warn("retriever", "skipping chunk with missing document", map[string]interface{}{
				"document_id": chunk.DocumentId.String(),
			})
			continue
		}

		passages = append(passages, store.RetrievedPassage{
			DocumentId: doc.Id,
			Title:      doc.Title,
			Chunk:      chunk.Chunk,
			Url:        doc.Url,
			Similarity: chunk.Similarity,
			Rank:       len(passages) + 1,
		})
	}

	return passages, nil
}
