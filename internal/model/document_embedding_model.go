package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Chunk          string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 uses 768 dimensions
	DocumentId     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex     int             `gorm:"default:0"` // 0-based index for ordering
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (DocumentEmbedding) TableName() string {
	return "document_embeddings"
}
