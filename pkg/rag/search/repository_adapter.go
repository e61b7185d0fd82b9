package search

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tenglaafi-be/internal/repository/contract"
	"tenglaafi-be/internal/repository/specification"
	"tenglaafi-be/pkg/store"
)

// RepositoryIndex adapts the pgvector-backed embedding repository to VectorIndex.
type RepositoryIndex struct {
	embeddings contract.DocumentEmbeddingRepository
}

func NewRepositoryIndex(embeddings contract.DocumentEmbeddingRepository) *RepositoryIndex {
	return &RepositoryIndex{embeddings: embeddings}
}

func (r *RepositoryIndex) Search(ctx context.Context, queryVector []float32, limit int) ([]ScoredChunk, error) {
	scored, err := r.embeddings.SearchSimilarWithScore(ctx, queryVector, limit)
	if err != nil {
		return nil, err
	}

	chunks := make([]ScoredChunk, 0, len(scored))
	for _, s := range scored {
		if s == nil || s.Embedding == nil {
			continue
		}
		chunks = append(chunks, ScoredChunk{
			DocumentId: s.Embedding.DocumentId,
			Chunk:      s.Embedding.Chunk,
			Similarity: s.Similarity,
		})
	}
	return chunks, nil
}

func (r *RepositoryIndex) Count(ctx context.Context) (int64, error) {
	return r.embeddings.Count(ctx)
}

// RepositoryLookup adapts the document repository to DocumentLookup.
type RepositoryLookup struct {
	documents contract.DocumentRepository
}

func NewRepositoryLookup(documents contract.DocumentRepository) *RepositoryLookup {
	return &RepositoryLookup{documents: documents}
}

func (r *RepositoryLookup) Get(ctx context.Context, id uuid.UUID) (*store.Document, error) {
	doc, err := r.documents.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	return &store.Document{
		Id:          doc.Id,
		Title:       doc.Title,
		Text:        doc.Text,
		SourceLabel: doc.SourceLabel,
		Url:         doc.Url,
		Length:      doc.Length,
		IngestedAt:  doc.IngestedAt,
	}, nil
}
