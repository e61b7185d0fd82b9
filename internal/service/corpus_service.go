package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tenglaafi-be/internal/constant"
	"tenglaafi-be/internal/dto"
	"tenglaafi-be/internal/entity"
	"tenglaafi-be/internal/pkg/logger"
	"tenglaafi-be/internal/repository/unitofwork"
)

// SyncResult reports what a corpus synchronization did.
type SyncResult struct {
	Synced        bool
	DocumentCount int
	CorpusHash    string
}

// ICorpusService loads the corpus file and keeps the document store and
// vector index in line with it.
type ICorpusService interface {
	Sync(ctx context.Context, corpusPath string, force bool) (*SyncResult, error)
}

type corpusService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewCorpusService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	log logger.ILogger,
) ICorpusService {
	return &corpusService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// Sync reads the corpus JSON, fingerprints it and rebuilds the document
// store when the fingerprint changed (or force is set). Embedding happens
// asynchronously: one indexing event is published per stored document.
func (cs *corpusService) Sync(ctx context.Context, corpusPath string, force bool) (*SyncResult, error) {
	docs, err := loadCorpusFile(corpusPath)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("corpus file %s contains no documents", corpusPath)
	}

	hash := corpusHash(docs)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	state, err := uow.IndexStateRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read index state: %w", err)
	}
	if state != nil && state.CorpusHash == hash && !force {
		cs.logger.Info("corpus_service", "corpus unchanged, skipping reindex", map[string]interface{}{
			"documents": len(docs),
		})
		return &SyncResult{Synced: false, DocumentCount: len(docs), CorpusHash: hash}, nil
	}

	entities := make([]*entity.Document, 0, len(docs))
	for _, d := range docs {
		entities = append(entities, &entity.Document{
			Id:          documentId(d.Id),
			Title:       d.Title,
			Text:        d.Text,
			SourceLabel: d.SourceLabel,
			Url:         d.Url,
			Length:      utf8.RuneCountInString(d.Text),
			IngestedAt:  time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear embeddings: %w", err)
	}
	if err := uow.DocumentRepository().DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear documents: %w", err)
	}
	if err := uow.DocumentRepository().CreateBulk(ctx, entities); err != nil {
		return nil, fmt.Errorf("failed to store documents: %w", err)
	}

	newState := &entity.IndexState{
		EmbeddingModel: constant.EmbeddingModelName,
		CorpusHash:     hash,
		DocumentCount:  len(entities),
		IndexedAt:      time.Now(),
	}
	if state != nil {
		newState.Id = state.Id
	}
	if err := uow.IndexStateRepository().Save(ctx, newState); err != nil {
		return nil, fmt.Errorf("failed to save index state: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	for _, doc := range entities {
		payload, err := json.Marshal(dto.PublishIndexDocumentMessage{DocumentId: doc.Id})
		if err != nil {
			return nil, err
		}
		if err := cs.publisher.Publish(ctx, payload); err != nil {
			return nil, fmt.Errorf("failed to publish indexing event for %s: %w", doc.Id, err)
		}
	}

	cs.logger.Info("corpus_service", "corpus synchronized", map[string]interface{}{
		"documents": len(entities),
		"forced":    force,
	})

	return &SyncResult{Synced: true, DocumentCount: len(entities), CorpusHash: hash}, nil
}

func loadCorpusFile(path string) ([]dto.CorpusDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var docs []dto.CorpusDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}
	return docs, nil
}

// corpusHash fingerprints the corpus content. Document order in the file
// does not matter; id, title and text do.
func corpusHash(docs []dto.CorpusDocument) string {
	sorted := make([]dto.CorpusDocument, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Id < sorted[j].Id })

	h := sha256.New()
	for _, d := range sorted {
		fmt.Fprintf(h, "%s|%s|%s\n", d.Id, d.Title, d.Text)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// documentId keeps stable UUIDs for corpus entries. Entries whose id is
// already a UUID keep it; anything else maps deterministically via the
// name-based UUID v5 scheme.
func documentId(raw string) uuid.UUID {
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(raw))
}
