package implementation

import (
	"context"
	"encoding/json"
	"time"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const historyKeyPrefix = "chat_history:"

// RedisHistoryRepositoryImpl keeps one Redis list per session, one JSON
// document per turn, appended in conversation order.
type RedisHistoryRepositoryImpl struct {
	client *redis.Client
}

func NewRedisHistoryRepository(client *redis.Client) contract.HistoryRepository {
	return &RedisHistoryRepositoryImpl{client: client}
}

type storedTurn struct {
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *RedisHistoryRepositoryImpl) Append(ctx context.Context, sessionId string, turns ...*entity.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]interface{}, len(turns))
	for i, t := range turns {
		encoded, err := json.Marshal(storedTurn{
			Role:      t.Role,
			Message:   t.Message,
			CreatedAt: t.CreatedAt,
		})
		if err != nil {
			return err
		}
		values[i] = encoded
	}
	return r.client.RPush(ctx, historyKeyPrefix+sessionId, values...).Err()
}

func (r *RedisHistoryRepositoryImpl) LastTurns(ctx context.Context, sessionId string, n int) ([]*entity.ChatTurn, error) {
	if n <= 0 {
		return []*entity.ChatTurn{}, nil
	}
	raw, err := r.client.LRange(ctx, historyKeyPrefix+sessionId, int64(-n), -1).Result()
	if err != nil {
		return nil, err
	}

	turns := make([]*entity.ChatTurn, 0, len(raw))
	for _, item := range raw {
		var st storedTurn
		if err := json.Unmarshal([]byte(item), &st); err != nil {
			continue // skip corrupt entries rather than failing the whole read
		}
		turns = append(turns, &entity.ChatTurn{
			SessionId: sessionId,
			Role:      st.Role,
			Message:   st.Message,
			CreatedAt: st.CreatedAt,
		})
	}
	return turns, nil
}

func (r *RedisHistoryRepositoryImpl) Clear(ctx context.Context, sessionId string) error {
	return r.client.Del(ctx, historyKeyPrefix+sessionId).Err()
}

func (r *RedisHistoryRepositoryImpl) ClearAll(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, historyKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
