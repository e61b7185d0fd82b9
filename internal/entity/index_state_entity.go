package entity

import (
	"time"

	"github.com/google/uuid"
)

// IndexState records what the vector index was last built from. A single
// row; the indexer compares it against the current corpus to decide
// whether a rebuild is needed.
type IndexState struct {
	Id             uuid.UUID
	EmbeddingModel string
	CorpusHash     string
	DocumentCount  int
	IndexedAt      time.Time
}
