package mapper

import (
	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/model"
)

type FileRecordMapper struct{}

func NewFileRecordMapper() *FileRecordMapper {
	return &FileRecordMapper{}
}

func (m *FileRecordMapper) ToEntity(r *model.FileRecord) *entity.FileRecord {
	if r == nil {
		return nil
	}
	return &entity.FileRecord{
		Id:        r.Id,
		FileName:  r.FileName,
		Metadata:  jsonMapToStrings(r.Metadata),
		DateAdded: r.DateAdded,
	}
}

func (m *FileRecordMapper) ToModel(r *entity.FileRecord) *model.FileRecord {
	if r == nil {
		return nil
	}
	return &model.FileRecord{
		Id:        r.Id,
		FileName:  r.FileName,
		Metadata:  stringsToJSONMap(r.Metadata),
		DateAdded: r.DateAdded,
	}
}

func (m *FileRecordMapper) ToEntities(records []*model.FileRecord) []*entity.FileRecord {
	entities := make([]*entity.FileRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
