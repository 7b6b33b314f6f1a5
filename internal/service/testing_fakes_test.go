package service

import (
	"context"
	"errors"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/repository/contract"
	"knowledgegpt-be/pkg/events"
	"knowledgegpt-be/pkg/llm"
	"knowledgegpt-be/pkg/rerank"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestPublisher() *events.Publisher {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	return events.NewPublisher(pubSub, "AUDIT_EVENTS_TEST")
}

// fakeEmbedder returns a constant-direction vector so every chunk is a
// similarity candidate; retrieval ordering is then decided by the reranker.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, texts []string, inputType string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

// identityReranker keeps the similarity order.
type identityReranker struct{}

func (identityReranker) Rerank(ctx context.Context, query string, documents []string) ([]rerank.Result, error) {
	results := make([]rerank.Result, len(documents))
	for i := range documents {
		results[i] = rerank.Result{Index: i, Score: 1.0 - float64(i)*0.01}
	}
	return results, nil
}

// recordingModel captures every rendered prompt it receives.
type recordingModel struct {
	prompts []string
	answer  string
}

func (m *recordingModel) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) > 0 {
		m.prompts = append(m.prompts, history[len(history)-1].Content)
	}
	return m.answer, nil
}

func (m *recordingModel) Generate(ctx context.Context, promptText string, opts ...llm.Option) (string, error) {
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: promptText}}, opts...)
}

// failingHistoryRepo fails appends but reads fine.
type failingHistoryRepo struct {
	contract.HistoryRepository
}

func (failingHistoryRepo) Append(ctx context.Context, sessionId string, turns ...*entity.ChatTurn) error {
	return errors.New("history store down")
}

// failingVectorRepo rejects inserts to exercise the compensating delete.
type failingVectorRepo struct {
	contract.VectorRepository
}

func (failingVectorRepo) AddBulk(ctx context.Context, chunks []*entity.EmbeddedChunk) error {
	return errors.New("vector store down")
}
