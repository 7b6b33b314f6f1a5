package contract

import (
	"context"

	"knowledgegpt-be/internal/entity"
)

// HistoryRepository stores per-session conversation turns. A session with no
// stored turns is simply empty; sessions are never created explicitly.
type HistoryRepository interface {
	// Append adds turns to the end of the session's history.
	Append(ctx context.Context, sessionId string, turns ...*entity.ChatTurn) error

	// LastTurns returns up to n most recent turns, oldest first.
	LastTurns(ctx context.Context, sessionId string, n int) ([]*entity.ChatTurn, error)

	// Clear truncates one session's history.
	Clear(ctx context.Context, sessionId string) error

	// ClearAll truncates every session. Guarded behind an explicit
	// all-sessions flag at the API layer.
	ClearAll(ctx context.Context) error
}
