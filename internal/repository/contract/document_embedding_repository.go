package contract

import (
	"context"

	"tenglaafi-be/internal/entity"
	"tenglaafi-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentEmbedding pairs an embedding row with its cosine
// similarity against a query vector.
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64
}

type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	DeleteAll(ctx context.Context) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// CountIndexedDocuments returns how many distinct documents have at
	// least one stored embedding.
	CountIndexedDocuments(ctx context.Context) (int64, error)

	// SearchSimilarWithScore returns the limit nearest chunks by cosine
	// similarity, ordered descending.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredDocumentEmbedding, error)
}
