package memory

import (
	"context"
	"sync"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/repository/contract"

	"github.com/google/uuid"
)

// FileRecordRepository is the debug-mode metadata store.
type FileRecordRepository struct {
	mu      sync.RWMutex
	records []*entity.FileRecord
}

func NewFileRecordRepository() *FileRecordRepository {
	return &FileRecordRepository{}
}

var _ contract.FileRecordRepository = (*FileRecordRepository)(nil)

func (r *FileRecordRepository) Create(ctx context.Context, record *entity.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	stored := *record
	r.records = append(r.records, &stored)
	return nil
}

func (r *FileRecordRepository) FindAll(ctx context.Context) ([]*entity.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.FileRecord, len(r.records))
	for i, rec := range r.records {
		copied := *rec
		out[i] = &copied
	}
	return out, nil
}

func (r *FileRecordRepository) DeleteById(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range r.records {
		if rec.Id == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *FileRecordRepository) DeleteByFilter(ctx context.Context, filter map[string]string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*entity.FileRecord
	var deleted int64
	for _, rec := range r.records {
		if matchesRecordFilter(rec, filter) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return deleted, nil
}

func matchesRecordFilter(rec *entity.FileRecord, filter map[string]string) bool {
	for k, v := range filter {
		if k == entity.MetaFileName {
			if rec.FileName != v {
				return false
			}
			continue
		}
		if rec.Metadata[k] != v {
			return false
		}
	}
	return true
}
