package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentEmbedding struct {
	Id             uuid.UUID
	Chunk          string
	EmbeddingValue []float32
	DocumentId     uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
}
