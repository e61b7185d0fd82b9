package store

import (
	"time"

	"github.com/google/uuid"
)

// Document is a corpus record. It is written by the indexing path and
// read-only while queries are being served.
type Document struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	SourceLabel string    `json:"source"`
	Url         string    `json:"url,omitempty"`
	Length      int       `json:"length"`
	IngestedAt  time.Time `json:"ingested_at"`
}

// RetrievedPassage is one vector-search hit, hydrated with document
// metadata. Ranks start at 1 and follow descending similarity.
type RetrievedPassage struct {
	DocumentId uuid.UUID `json:"document_id"`
	Title      string    `json:"title"`
	Chunk      string    `json:"chunk"`
	Url        string    `json:"url,omitempty"`
	Similarity float64   `json:"similarity"`
	Rank       int       `json:"rank"`
}

// Source is the citation metadata attached to an answer.
type Source struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Url        string    `json:"url,omitempty"`
	Similarity float64   `json:"similarity"`
}

// Answer is the final result of one query. Immutable after creation;
// the cached copy and the returned copy are the same value.
type Answer struct {
	Text                  string   `json:"answer"`
	Sources               []Source `json:"sources"`
	GenerationTimeSeconds float64  `json:"generation_time"`
	CacheHit              bool     `json:"cache_hit"`
}
