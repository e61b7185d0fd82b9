package mapper

import (
	"tenglaafi-be/internal/entity"
	"tenglaafi-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:          d.Id,
		Title:       d.Title,
		Text:        d.Text,
		SourceLabel: d.SourceLabel,
		Url:         d.Url,
		Length:      d.Length,
		IngestedAt:  d.IngestedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:          d.Id,
		Title:       d.Title,
		Text:        d.Text,
		SourceLabel: d.SourceLabel,
		Url:         d.Url,
		Length:      d.Length,
		IngestedAt:  d.IngestedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *DocumentMapper) ToModels(documents []*entity.Document) []*model.Document {
	models := make([]*model.Document, len(documents))
	for i, d := range documents {
		models[i] = m.ToModel(d)
	}
	return models
}
