package service

import (
	"context"
	"time"

	"knowledgegpt-be/internal/dto"
	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/pkg/apperr"
	"knowledgegpt-be/internal/pkg/logger"
	"knowledgegpt-be/internal/repository/contract"
	"knowledgegpt-be/pkg/events"
	"knowledgegpt-be/pkg/llm"
	"knowledgegpt-be/pkg/rag/history"
	"knowledgegpt-be/pkg/rag/prompt"
	"knowledgegpt-be/pkg/rag/retrieval"
)

// Metadata keys that must never cross the service boundary.
var internalMetadataKeys = []string{"_id", "id"}

type IQnAService interface {
	AskQuestion(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
	ClearHistory(ctx context.Context, sessionId string, allSessions bool) error
}

// qnaService runs the conversation pipeline. It is stateless across
// requests; all conversational memory lives in the history store.
type qnaService struct {
	retriever   *retrieval.Retriever
	window      *history.Window
	builder     *prompt.Builder
	model       llm.Provider
	historyRepo contract.HistoryRepository
	publisher   *events.Publisher
	temperature float64
	topK        int
	fetchK      int
	log         logger.ILogger
}

func NewQnAService(
	retriever *retrieval.Retriever,
	window *history.Window,
	builder *prompt.Builder,
	model llm.Provider,
	historyRepo contract.HistoryRepository,
	publisher *events.Publisher,
	temperature float64,
	topK, fetchK int,
	log logger.ILogger,
) IQnAService {
	return &qnaService{
		retriever:   retriever,
		window:      window,
		builder:     builder,
		model:       model,
		historyRepo: historyRepo,
		publisher:   publisher,
		temperature: temperature,
		topK:        topK,
		fetchK:      fetchK,
		log:         log,
	}
}

// AskQuestion resolves context, merges conversational memory, invokes the
// model once, then persists the new turn. A history-persist failure after a
// successful answer is logged and swallowed: the user still gets their
// answer.
func (s *qnaService) AskQuestion(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	started := time.Now()

	chunks, err := s.retriever.Retrieve(ctx, req.Query, req.Filters, s.topK, s.fetchK)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindQnA, "retrieve context", err)
	}

	turns, err := s.window.Load(ctx, req.SessionId)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindQnA, "load chat history", err)
	}

	rendered := s.builder.Render(turns, chunks, req.Query)

	answer, err := s.model.Generate(ctx, rendered, llm.WithTemperature(s.temperature))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindQnA, "invoke language model", err)
	}

	if err := s.window.Record(ctx, req.SessionId, req.Query, answer); err != nil {
		s.log.Error("qna", "failed to persist conversation turn", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
	}

	s.log.Info("qna", "question answered", map[string]interface{}{
		"session_id": req.SessionId,
		"sources":    len(chunks),
		"took_ms":    time.Since(started).Milliseconds(),
	})

	return &dto.QueryResponse{
		Query:           req.Query,
		Response:        answer,
		SourceDocuments: toSourceDocuments(chunks),
		TookMs:          time.Since(started).Milliseconds(),
	}, nil
}

// ClearHistory truncates one session's memory, or every session's when
// allSessions is set explicitly.
func (s *qnaService) ClearHistory(ctx context.Context, sessionId string, allSessions bool) error {
	var err error
	if allSessions {
		err = s.historyRepo.ClearAll(ctx)
	} else {
		if sessionId == "" {
			return apperr.New(apperr.KindBadRequest, "session_id is required unless all=true")
		}
		err = s.historyRepo.Clear(ctx, sessionId)
	}
	if err != nil {
		return apperr.Wrap(apperr.KindQnA, "clear chat history", err)
	}

	if err := s.publisher.Publish(events.NewHistoryCleared(sessionId, allSessions)); err != nil {
		s.log.Warn("qna", "audit publish failed", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

// toSourceDocuments strips internal storage identifiers from chunk metadata
// before it crosses the pipeline boundary.
func toSourceDocuments(chunks []*entity.ScoredChunk) []dto.SourceDocument {
	out := make([]dto.SourceDocument, len(chunks))
	for i, sc := range chunks {
		meta := sc.Chunk.CloneMetadata()
		for _, key := range internalMetadataKeys {
			delete(meta, key)
		}
		out[i] = dto.SourceDocument{
			Text:     sc.Chunk.Text,
			Metadata: meta,
		}
	}
	return out
}
