package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/repository/implementation"
	"knowledgegpt-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgVectorStore(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	vectorRepo := implementation.NewPgVectorRepository(gormDB)
	fileRepo := implementation.NewFileRecordRepository(gormDB)
	ctx := context.Background()

	fileName := "integration-" + uuid.NewString() + ".txt"

	t.Run("Chunk round trip with filter", func(t *testing.T) {
		embedding := make([]float32, 1024)
		embedding[0] = 1

		err := vectorRepo.AddBulk(ctx, []*entity.EmbeddedChunk{{
			Chunk: &entity.Chunk{
				Id:   uuid.New(),
				Text: "integration test chunk",
				Metadata: map[string]string{
					entity.MetaFileName: fileName,
				},
			},
			Embedding: embedding,
		}})
		require.NoError(t, err)

		chunks, err := vectorRepo.SimilaritySearch(ctx, embedding, 5, map[string]string{entity.MetaFileName: fileName})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "integration test chunk", chunks[0].Text)

		deleted, err := vectorRepo.DeleteByFilter(ctx, map[string]string{entity.MetaFileName: fileName})
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
	})

	t.Run("File record round trip", func(t *testing.T) {
		record := &entity.FileRecord{
			Id:       uuid.New(),
			FileName: fileName,
			Metadata: map[string]string{"category": "integration"},
		}
		require.NoError(t, fileRepo.Create(ctx, record))

		records, err := fileRepo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, records)

		deleted, err := fileRepo.DeleteByFilter(ctx, map[string]string{entity.MetaFileName: fileName})
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
	})
}

func TestRedisHistoryStore(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opts)

	repo := implementation.NewRedisHistoryRepository(client)
	ctx := context.Background()
	sessionId := "integration-" + uuid.NewString()

	require.NoError(t, repo.Append(ctx, sessionId,
		&entity.ChatTurn{SessionId: sessionId, Role: entity.ChatRoleHuman, Message: "q1"},
		&entity.ChatTurn{SessionId: sessionId, Role: entity.ChatRoleAI, Message: "a1"},
	))

	turns, err := repo.LastTurns(ctx, sessionId, 4)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, entity.ChatRoleHuman, turns[0].Role)
	assert.Equal(t, "a1", turns[1].Message)

	require.NoError(t, repo.Clear(ctx, sessionId))
	turns, err = repo.LastTurns(ctx, sessionId, 4)
	require.NoError(t, err)
	assert.Empty(t, turns)
}
