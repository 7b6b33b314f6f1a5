package history

import (
	"context"
	"testing"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_LoadReturnsBoundedRecentTurns(t *testing.T) {
	repo := memory.NewHistoryRepository()
	w := NewWindow(repo, 2)
	ctx := context.Background()

	require.NoError(t, w.Record(ctx, "s1", "q1", "a1"))
	require.NoError(t, w.Record(ctx, "s1", "q2", "a2"))
	require.NoError(t, w.Record(ctx, "s1", "q3", "a3"))

	turns, err := w.Load(ctx, "s1")
	require.NoError(t, err)

	// Two pairs = the last four turns, oldest first.
	require.Len(t, turns, 4)
	assert.Equal(t, "q2", turns[0].Message)
	assert.Equal(t, entity.ChatRoleHuman, turns[0].Role)
	assert.Equal(t, "a2", turns[1].Message)
	assert.Equal(t, entity.ChatRoleAI, turns[1].Role)
	assert.Equal(t, "q3", turns[2].Message)
	assert.Equal(t, "a3", turns[3].Message)
}

func TestWindow_UnknownSessionIsEmpty(t *testing.T) {
	w := NewWindow(memory.NewHistoryRepository(), 2)

	turns, err := w.Load(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestWindow_SessionsAreIsolated(t *testing.T) {
	repo := memory.NewHistoryRepository()
	w := NewWindow(repo, 2)
	ctx := context.Background()

	require.NoError(t, w.Record(ctx, "a", "question a", "answer a"))
	require.NoError(t, w.Record(ctx, "b", "question b", "answer b"))

	turns, err := w.Load(ctx, "a")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "question a", turns[0].Message)
}
