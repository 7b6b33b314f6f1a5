package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type FileRecord struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName  string            `gorm:"type:varchar(512);not null;index"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	DateAdded time.Time         `gorm:"autoCreateTime"`
}

func (FileRecord) TableName() string {
	return "file_records"
}
