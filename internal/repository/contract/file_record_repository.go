package contract

import (
	"context"

	"knowledgegpt-be/internal/entity"

	"github.com/google/uuid"
)

// FileRecordRepository persists one record per ingested file in the
// metadata store. Kept separate from the vector store; the two are joined
// by file_name and are not updated transactionally.
type FileRecordRepository interface {
	Create(ctx context.Context, record *entity.FileRecord) error
	FindAll(ctx context.Context) ([]*entity.FileRecord, error)
	DeleteById(ctx context.Context, id uuid.UUID) error
	DeleteByFilter(ctx context.Context, filter map[string]string) (int64, error)
}
