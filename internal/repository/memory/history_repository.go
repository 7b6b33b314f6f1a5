package memory

import (
	"context"
	"sync"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/repository/contract"
)

// HistoryRepository holds conversation turns in process memory. Used in
// debug mode and by tests.
type HistoryRepository struct {
	mu       sync.RWMutex
	sessions map[string][]*entity.ChatTurn
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{
		sessions: make(map[string][]*entity.ChatTurn),
	}
}

var _ contract.HistoryRepository = (*HistoryRepository)(nil)

func (r *HistoryRepository) Append(ctx context.Context, sessionId string, turns ...*entity.ChatTurn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionId] = append(r.sessions[sessionId], turns...)
	return nil
}

func (r *HistoryRepository) LastTurns(ctx context.Context, sessionId string, n int) ([]*entity.ChatTurn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	turns := r.sessions[sessionId]
	if n <= 0 || len(turns) == 0 {
		return []*entity.ChatTurn{}, nil
	}
	if n > len(turns) {
		n = len(turns)
	}
	out := make([]*entity.ChatTurn, n)
	copy(out, turns[len(turns)-n:])
	return out, nil
}

func (r *HistoryRepository) Clear(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionId)
	return nil
}

func (r *HistoryRepository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string][]*entity.ChatTurn)
	return nil
}
