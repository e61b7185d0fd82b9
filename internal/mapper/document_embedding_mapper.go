package mapper

import (
	"tenglaafi-be/internal/entity"
	"tenglaafi-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

func (m *DocumentEmbeddingMapper) ToEntity(e *model.DocumentEmbedding) *entity.DocumentEmbedding {
	if e == nil {
		return nil
	}
	return &entity.DocumentEmbedding{
		Id:             e.Id,
		Chunk:          e.Chunk,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	if e == nil {
		return nil
	}
	return &model.DocumentEmbedding{
		Id:             e.Id,
		Chunk:          e.Chunk,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToEntities(embeddings []*model.DocumentEmbedding) []*entity.DocumentEmbedding {
	entities := make([]*entity.DocumentEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *DocumentEmbeddingMapper) ToModels(embeddings []*entity.DocumentEmbedding) []*model.DocumentEmbedding {
	models := make([]*model.DocumentEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
