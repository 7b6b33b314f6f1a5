package bootstrap

import (
	"log"

	"knowledgegpt-be/internal/config"
	"knowledgegpt-be/internal/controller"
	"knowledgegpt-be/internal/pkg/logger"
	"knowledgegpt-be/internal/repository/contract"
	"knowledgegpt-be/internal/repository/implementation"
	"knowledgegpt-be/internal/repository/memory"
	"knowledgegpt-be/internal/service"
	"knowledgegpt-be/pkg/embedding"
	"knowledgegpt-be/pkg/events"
	"knowledgegpt-be/pkg/llm/factory"
	"knowledgegpt-be/pkg/loader"
	"knowledgegpt-be/pkg/rag/history"
	"knowledgegpt-be/pkg/rag/prompt"
	"knowledgegpt-be/pkg/rag/retrieval"
	"knowledgegpt-be/pkg/rerank"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QueryController  controller.IQueryController
	IngestController controller.IIngestController
	FilesController  controller.IFilesController

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService
}

// NewContainer wires the whole dependency graph once at startup. db and
// redisClient may be nil in debug mode; the in-memory store backend is
// selected instead.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Store backend
	var (
		vectorRepo  contract.VectorRepository
		fileRepo    contract.FileRecordRepository
		historyRepo contract.HistoryRepository
	)
	if cfg.App.Debug {
		vectorRepo = memory.NewVectorRepository()
		fileRepo = memory.NewFileRecordRepository()
		historyRepo = memory.NewHistoryRepository()
		log.Println("[INFO] Using Store Backend: IN-MEMORY (debug)")
	} else {
		vectorRepo = implementation.NewPgVectorRepository(db)
		fileRepo = implementation.NewFileRecordRepository(db)
		historyRepo = implementation.NewRedisHistoryRepository(redisClient)
		log.Println("[INFO] Using Store Backend: POSTGRES/PGVECTOR + REDIS")
	}

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisher := events.NewPublisher(pubSub, cfg.App.AuditTopic)

	// AI providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewCohereProvider(cfg.Ai.APIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: COHERE (%s)", cfg.Ai.EmbeddingModel)
	}

	reranker := rerank.NewCohereReranker(cfg.Ai.APIKey, cfg.Ai.RerankModel)

	llmProvider, err := factory.NewProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.APIKey, cfg.Ai.OllamaBaseURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// A broken prompt template must fail startup, not the first query.
	promptBuilder, err := prompt.NewBuilder(cfg.Ai.PromptTemplate)
	if err != nil {
		log.Fatalf("[FATAL] Invalid prompt template: %v", err)
	}

	retriever := retrieval.NewRetriever(embeddingProvider, reranker, vectorRepo)
	memoryWindow := history.NewWindow(historyRepo, history.DefaultPairs)

	loaderCfg := loader.Config{
		ChunkSize:    cfg.Chunking.ChunkSize,
		ChunkOverlap: cfg.Chunking.ChunkOverlap,
		Separator:    cfg.Chunking.Separator,
	}

	// Services
	ingestionService := service.NewIngestionService(vectorRepo, fileRepo, embeddingProvider, publisher, loaderCfg, sysLogger)
	qnaService := service.NewQnAService(
		retriever,
		memoryWindow,
		promptBuilder,
		llmProvider,
		historyRepo,
		publisher,
		cfg.Ai.Temperature,
		cfg.Retrieval.TopK,
		cfg.Retrieval.FetchK,
		sysLogger,
	)
	auditService := service.NewAuditService(pubSub, cfg.App.AuditTopic, sysLogger)

	return &Container{
		QueryController:  controller.NewQueryController(qnaService),
		IngestController: controller.NewIngestController(ingestionService, cfg.App.UploadDir),
		FilesController:  controller.NewFilesController(ingestionService),
		AuditService:     auditService,
	}
}
