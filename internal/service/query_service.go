package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"tenglaafi-be/internal/apperrors"
	"tenglaafi-be/internal/constant"
	"tenglaafi-be/internal/dto"
	"tenglaafi-be/internal/pkg/logger"
	"tenglaafi-be/internal/repository/unitofwork"
	"tenglaafi-be/pkg/rag/cache"
	ragcontext "tenglaafi-be/pkg/rag/context"
	"tenglaafi-be/pkg/rag/postprocess"
	"tenglaafi-be/pkg/rag/response"
	"tenglaafi-be/pkg/rag/search"
	"tenglaafi-be/pkg/store"
)

// IQueryService answers medical questions against the indexed corpus.
type IQueryService interface {
	Answer(ctx context.Context, question string, topK int) (*store.Answer, error)
	BatchAnswer(ctx context.Context, questions []string, topK int) (*dto.BatchQueryResponse, error)
	SimilarTopics(ctx context.Context, question string, limit int) ([]string, error)
	ClearCache(ctx context.Context) int
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

// QueryLimits bounds question validation and top-k clamping.
type QueryLimits struct {
	MinQuestionLength int
	TopKDefault       int
	TopKMax           int
}

type queryService struct {
	retriever   *search.Retriever
	assembler   *ragcontext.Assembler
	generator   *response.Generator
	resultCache *cache.ResultCache
	uowFactory  unitofwork.RepositoryFactory
	limits      QueryLimits
	logger      logger.ILogger
}

func NewQueryService(
	retriever *search.Retriever,
	assembler *ragcontext.Assembler,
	generator *response.Generator,
	resultCache *cache.ResultCache,
	uowFactory unitofwork.RepositoryFactory,
	limits QueryLimits,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		retriever:   retriever,
		assembler:   assembler,
		generator:   generator,
		resultCache: resultCache,
		uowFactory:  uowFactory,
		limits:      limits,
		logger:      log,
	}
}

// Answer runs the full pipeline: validate, check the cache, retrieve,
// assemble, generate, clean, cache. Cache hits skip every outbound call.
func (qs *queryService) Answer(ctx context.Context, question string, topK int) (*store.Answer, error) {
	started := time.Now()

	normalized, topK, err := qs.validate(question, topK)
	if err != nil {
		return nil, err
	}

	key := cache.Key(normalized, topK)
	if cached, ok := qs.resultCache.Get(key); ok {
		qs.logger.Debug("query_service", "cache hit", map[string]interface{}{"top_k": topK})
		hit := cached
		hit.CacheHit = true
		hit.GenerationTimeSeconds = time.Since(started).Seconds()
		return &hit, nil
	}

	passages, err := qs.retriever.Retrieve(ctx, normalized, topK)
	if err != nil {
		return nil, err
	}

	if len(passages) == 0 {
		qs.logger.Info("query_service", "no relevant documents for question", map[string]interface{}{"top_k": topK})
		answer := store.Answer{
			Text:                  constant.AnswerNoRelevantDocuments,
			Sources:               []store.Source{},
			GenerationTimeSeconds: time.Since(started).Seconds(),
		}
		qs.resultCache.Put(key, answer)
		return &answer, nil
	}

	queryContext := qs.assembler.Build(passages)

	raw, err := qs.generator.Generate(ctx, normalized, queryContext.Text)
	if err != nil {
		return nil, err
	}

	answer := store.Answer{
		Text:                  postprocess.CleanAnswer(raw),
		Sources:               sourcesFromPassages(queryContext.Passages),
		GenerationTimeSeconds: time.Since(started).Seconds(),
	}
	qs.resultCache.Put(key, answer)

	qs.logger.Info("query_service", "question answered", map[string]interface{}{
		"top_k":       topK,
		"sources":     len(answer.Sources),
		"duration_ms": time.Since(started).Milliseconds(),
	})

	return &answer, nil
}

// BatchAnswer processes questions sequentially. One failing question does
// not abort the batch; its error travels in the corresponding item.
func (qs *queryService) BatchAnswer(ctx context.Context, questions []string, topK int) (*dto.BatchQueryResponse, error) {
	if len(questions) == 0 {
		return nil, apperrors.InvalidQuery("questions list is empty", nil)
	}

	results := make([]dto.BatchQueryItem, 0, len(questions))
	for _, question := range questions {
		item := dto.BatchQueryItem{Question: question}

		answer, err := qs.Answer(ctx, question, topK)
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Response = &dto.QueryResponse{
				Answer:                answer.Text,
				Sources:               answer.Sources,
				GenerationTimeSeconds: answer.GenerationTimeSeconds,
				CacheHit:              answer.CacheHit,
			}
		}
		results = append(results, item)
	}

	return &dto.BatchQueryResponse{Results: results}, nil
}

// SimilarTopics suggests follow-up reading based on the documents closest
// to the question.
func (qs *queryService) SimilarTopics(ctx context.Context, question string, limit int) ([]string, error) {
	normalized, limit, err := qs.validate(question, limit)
	if err != nil {
		return nil, err
	}

	passages, err := qs.retriever.Retrieve(ctx, normalized, limit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, len(passages))
	seen := make(map[string]bool, len(passages))
	for _, p := range passages {
		title := strings.TrimSpace(p.Title)
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		suggestions = append(suggestions, constant.SuggestionPrefix+title)
	}

	return suggestions, nil
}

func (qs *queryService) ClearCache(ctx context.Context) int {
	cleared := qs.resultCache.Len()
	qs.resultCache.Clear()
	qs.logger.Info("query_service", "result cache cleared", map[string]interface{}{"entries": cleared})
	return cleared
}

func (qs *queryService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	uow := qs.uowFactory.NewUnitOfWork(ctx)

	documentCount, err := uow.DocumentRepository().Count(ctx)
	if err != nil {
		return nil, apperrors.IndexUnavailable("failed to count documents", err)
	}

	embeddingCount, err := uow.DocumentEmbeddingRepository().Count(ctx)
	if err != nil {
		return nil, apperrors.IndexUnavailable("failed to count embeddings", err)
	}

	stats := &dto.StatsResponse{
		DocumentCount:  documentCount,
		EmbeddingCount: embeddingCount,
		CacheEntries:   qs.resultCache.Len(),
		CacheCapacity:  qs.resultCache.Capacity(),
		EmbeddingModel: constant.EmbeddingModelName,
	}

	state, err := uow.IndexStateRepository().Get(ctx)
	if err == nil && state != nil {
		stats.EmbeddingModel = state.EmbeddingModel
		stats.IndexedAt = state.IndexedAt.Format(time.RFC3339)
	}

	return stats, nil
}

// validate trims the question, enforces the minimum length and clamps
// top-k into its allowed range. A zero top-k takes the default.
func (qs *queryService) validate(question string, topK int) (string, int, error) {
	normalized := strings.TrimSpace(question)
	if normalized == "" {
		return "", 0, apperrors.InvalidQuery("question is empty", nil)
	}
	if utf8.RuneCountInString(normalized) < qs.limits.MinQuestionLength {
		return "", 0, apperrors.InvalidQuery("question is too short", nil)
	}

	if topK == 0 {
		topK = qs.limits.TopKDefault
	}
	if topK < 1 {
		topK = 1
	}
	if topK > qs.limits.TopKMax {
		topK = qs.limits.TopKMax
	}

	return normalized, topK, nil
}

func sourcesFromPassages(passages []store.RetrievedPassage) []store.Source {
	sources := make([]store.Source, 0, len(passages))
	for _, p := range passages {
		sources = append(sources, store.Source{
			Id:         p.DocumentId,
			Title:      p.Title,
			Url:        p.Url,
			Similarity: p.Similarity,
		})
	}
	return sources
}
