package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"tenglaafi-be/internal/constant"
	"tenglaafi-be/internal/dto"
	"tenglaafi-be/internal/entity"
	"tenglaafi-be/internal/pkg/logger"
	"tenglaafi-be/internal/repository/specification"
	"tenglaafi-be/internal/repository/unitofwork"
	"tenglaafi-be/pkg/rag/search"
	"tenglaafi-be/pkg/utils"
)

const (
	chunkSize    = 1500
	chunkOverlap = 200
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	embedder   search.Embedder
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embedder search.Embedder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		embedder:   embedder,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer_service", "failed to unmarshal indexing message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed messages never become valid, do not retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.logger.Error("consumer_service", "failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if doc == nil {
		cs.logger.Warn("consumer_service", "document vanished before indexing", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
		})
		msg.Ack()
		return
	}

	content := fmt.Sprintf("%s\n\n%s", doc.Title, doc.Text)
	chunks := utils.SplitText(content, chunkSize, chunkOverlap)

	embeddings := make([]*entity.DocumentEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := cs.embedder.Embed(ctx, chunk, constant.EmbeddingTaskDocument)
		if err != nil {
			cs.logger.Error("consumer_service", "failed to embed chunk", map[string]interface{}{
				"document_id": doc.Id.String(),
				"chunk":       i,
				"error":       err.Error(),
			})
			msg.Nack()
			return
		}

		embeddings = append(embeddings, &entity.DocumentEmbedding{
			Id:             uuid.New(),
			Chunk:          chunk,
			EmbeddingValue: vector,
			DocumentId:     doc.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("consumer_service", "failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		cs.logger.Error("consumer_service", "failed to delete stale embeddings", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	if len(embeddings) > 0 {
		if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
			cs.logger.Error("consumer_service", "failed to store embeddings", map[string]interface{}{
				"document_id": doc.Id.String(),
				"error":       err.Error(),
			})
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("consumer_service", "failed to commit embeddings", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer_service", "document indexed", map[string]interface{}{
		"document_id": doc.Id.String(),
		"chunks":      len(embeddings),
	})
	msg.Ack()
}
