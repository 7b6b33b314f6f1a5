package implementation

import (
	"context"
	"encoding/json"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/mapper"
	"knowledgegpt-be/internal/model"
	"knowledgegpt-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileRecordMapper
}

func NewFileRecordRepository(db *gorm.DB) contract.FileRecordRepository {
	return &FileRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileRecordMapper(),
	}
}

func (r *FileRecordRepositoryImpl) Create(ctx context.Context, record *entity.FileRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *FileRecordRepositoryImpl) FindAll(ctx context.Context) ([]*entity.FileRecord, error) {
	var models []*model.FileRecord
	err := r.db.WithContext(ctx).Order("date_added DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FileRecordRepositoryImpl) DeleteById(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.FileRecord{}).Error
}

func (r *FileRecordRepositoryImpl) DeleteByFilter(ctx context.Context, filter map[string]string) (int64, error) {
	query := r.db.WithContext(ctx)

	// file_name lives in its own column; the rest of the filter matches
	// against the metadata JSONB.
	rest := make(map[string]string, len(filter))
	for k, v := range filter {
		if k == entity.MetaFileName {
			query = query.Where("file_name = ?", v)
			continue
		}
		rest[k] = v
	}
	if len(rest) > 0 {
		encoded, err := json.Marshal(rest)
		if err != nil {
			return 0, err
		}
		query = query.Where("metadata @> ?::jsonb", string(encoded))
	}

	res := query.Delete(&model.FileRecord{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
