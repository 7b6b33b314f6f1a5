package history

import (
	"context"
	"time"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/repository/contract"
)

// DefaultPairs is the bounded memory window: the two most recent
// question/answer exchanges.
const DefaultPairs = 2

// Window reads and appends the bounded conversation memory of a session.
type Window struct {
	repo  contract.HistoryRepository
	pairs int
}

func NewWindow(repo contract.HistoryRepository, pairs int) *Window {
	if pairs <= 0 {
		pairs = DefaultPairs
	}
	return &Window{repo: repo, pairs: pairs}
}

// Load returns the most recent turns (up to pairs question/answer
// exchanges), oldest first. Unknown sessions yield an empty history.
func (w *Window) Load(ctx context.Context, sessionId string) ([]*entity.ChatTurn, error) {
	return w.repo.LastTurns(ctx, sessionId, w.pairs*2)
}

// Record appends a completed exchange to the session's history.
func (w *Window) Record(ctx context.Context, sessionId, question, answer string) error {
	now := time.Now()
	return w.repo.Append(ctx, sessionId,
		&entity.ChatTurn{SessionId: sessionId, Role: entity.ChatRoleHuman, Message: question, CreatedAt: now},
		&entity.ChatTurn{SessionId: sessionId, Role: entity.ChatRoleAI, Message: answer, CreatedAt: now},
	)
}
