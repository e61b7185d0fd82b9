package mapper

import (
	"tenglaafi-be/internal/entity"
	"tenglaafi-be/internal/model"
)

type IndexStateMapper struct{}

func NewIndexStateMapper() *IndexStateMapper {
	return &IndexStateMapper{}
}

func (m *IndexStateMapper) ToEntity(s *model.IndexState) *entity.IndexState {
	if s == nil {
		return nil
	}
	return &entity.IndexState{
		Id:             s.Id,
		EmbeddingModel: s.EmbeddingModel,
		CorpusHash:     s.CorpusHash,
		DocumentCount:  s.DocumentCount,
		IndexedAt:      s.IndexedAt,
	}
}

func (m *IndexStateMapper) ToModel(s *entity.IndexState) *model.IndexState {
	if s == nil {
		return nil
	}
	return &model.IndexState{
		Id:             s.Id,
		EmbeddingModel: s.EmbeddingModel,
		CorpusHash:     s.CorpusHash,
		DocumentCount:  s.DocumentCount,
		IndexedAt:      s.IndexedAt,
	}
}
