package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"tenglaafi-be/internal/config"
	"tenglaafi-be/internal/controller"
	"tenglaafi-be/internal/pkg/logger"
	"tenglaafi-be/internal/repository/implementation"
	"tenglaafi-be/internal/repository/memory"
	"tenglaafi-be/internal/repository/unitofwork"
	"tenglaafi-be/internal/service"
	"tenglaafi-be/pkg/embedding"
	"tenglaafi-be/pkg/llm/factory"
	"tenglaafi-be/pkg/rag/cache"
	ragcontext "tenglaafi-be/pkg/rag/context"
	"tenglaafi-be/pkg/rag/response"
	"tenglaafi-be/pkg/rag/search"
)

type Container struct {
	// Controllers
	QueryController controller.IQueryController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	CorpusService   service.ICorpusService

	// Shared infrastructure
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. RAG pipeline components
	embeddingCache := memory.NewEmbeddingCache()
	embedder := search.NewCachedEmbedder(
		embeddingProvider,
		embeddingCache,
		cfg.Rag.EmbeddingTimeout,
		cfg.Rag.RetryAttempts,
	)

	retriever := search.NewRetriever(
		embedder,
		search.NewRepositoryIndex(implementation.NewDocumentEmbeddingRepository(db)),
		search.NewRepositoryLookup(implementation.NewDocumentRepository(db)),
		sysLogger,
	)
	assembler := ragcontext.NewAssembler(cfg.Rag.ContextBudget, cfg.Rag.PassageCap)
	generator := response.NewGenerator(llmProvider, sysLogger, cfg.Rag.GenerationTimeout, cfg.Rag.RetryAttempts)
	resultCache := cache.NewResultCache(cfg.Rag.CacheCapacity)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Corpus.TopicName)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Corpus.TopicName,
		uowFactory,
		embedder,
		sysLogger,
	)
	corpusService := service.NewCorpusService(uowFactory, publisherService, sysLogger)

	queryService := service.NewQueryService(
		retriever,
		assembler,
		generator,
		resultCache,
		uowFactory,
		service.QueryLimits{
			MinQuestionLength: cfg.Rag.MinQuestionLength,
			TopKDefault:       cfg.Rag.TopKDefault,
			TopKMax:           cfg.Rag.TopKMax,
		},
		sysLogger,
	)

	// 6. Controllers
	queryController := controller.NewQueryController(queryService)

	return &Container{
		QueryController: queryController,
		ConsumerService: consumerService,
		CorpusService:   corpusService,
		Logger:          sysLogger,
	}
}
