package implementation

import (
	"context"

	"tenglaafi-be/internal/entity"
	"tenglaafi-be/internal/mapper"
	"tenglaafi-be/internal/model"
	"tenglaafi-be/internal/repository/contract"
	"tenglaafi-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentEmbeddingMapper
}

func NewDocumentEmbeddingRepository(db *gorm.DB) contract.DocumentEmbeddingRepository {
	return &DocumentEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentEmbeddingMapper(),
	}
}

func (r *DocumentEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.DocumentEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentEmbeddingRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentEmbedding{}).Error
}

func (r *DocumentEmbeddingRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.DocumentEmbedding{}).Error
}

func (r *DocumentEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error) {
	var models []*model.DocumentEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentEmbedding{}).Count(&count).Error
	return count, err
}

func (r *DocumentEmbeddingRepositoryImpl) CountIndexedDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentEmbedding{}).
		Distinct("document_id").
		Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns embeddings with similarity scores.
// Cosine distance in pgvector is 1 - cosine_similarity, so we compute
// 1 - (embedding_value <=> query_vector) as the similarity.
func (r *DocumentEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredDocumentEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.DocumentEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("document_embeddings").
		Select("document_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocumentEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredDocumentEmbedding{
			Embedding:  r.mapper.ToEntity(&res.DocumentEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
