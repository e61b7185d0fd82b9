package dto

import "tenglaafi-be/pkg/store"

type QueryRequest struct {
	Question       string `json:"question"`
	TopK           int    `json:"top_k"`
	IncludeSources *bool  `json:"include_sources,omitempty"`
}

type QueryResponse struct {
	Answer                string         `json:"answer"`
	Sources               []store.Source `json:"sources,omitempty"`
	GenerationTimeSeconds float64        `json:"generation_time_seconds"`
	CacheHit              bool           `json:"cache_hit"`
}

type BatchQueryRequest struct {
	Questions []string `json:"questions"`
	TopK      int      `json:"top_k"`
}

type BatchQueryItem struct {
	Question string         `json:"question"`
	Response *QueryResponse `json:"response,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type BatchQueryResponse struct {
	Results []BatchQueryItem `json:"results"`
}

type SimilarTopicsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type StatsResponse struct {
	DocumentCount  int64  `json:"document_count"`
	EmbeddingCount int64  `json:"embedding_count"`
	CacheEntries   int    `json:"cache_entries"`
	CacheCapacity  int    `json:"cache_capacity"`
	EmbeddingModel string `json:"embedding_model"`
	IndexedAt      string `json:"indexed_at,omitempty"`
}

type ClearCacheResponse struct {
	Cleared int `json:"cleared"`
}
