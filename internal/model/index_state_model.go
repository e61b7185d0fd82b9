package model

import (
	"time"

	"github.com/google/uuid"
)

type IndexState struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmbeddingModel string    `gorm:"type:text;not null"`
	CorpusHash     string    `gorm:"type:text;not null"`
	DocumentCount  int       `gorm:"default:0"`
	IndexedAt      time.Time `gorm:"autoUpdateTime"`
}

func (IndexState) TableName() string {
	return "index_states"
}
