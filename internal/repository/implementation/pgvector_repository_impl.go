package implementation

import (
	"context"
	"encoding/json"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/mapper"
	"knowledgegpt-be/internal/model"
	"knowledgegpt-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type PgVectorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewPgVectorRepository(db *gorm.DB) contract.VectorRepository {
	return &PgVectorRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *PgVectorRepositoryImpl) AddBulk(ctx context.Context, chunks []*entity.EmbeddedChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *PgVectorRepositoryImpl) SimilaritySearch(ctx context.Context, embedding []float32, limit int, filter map[string]string) ([]*entity.Chunk, error) {
	if limit <= 0 {
		limit = 5
	}

	query := r.db.WithContext(ctx).Model(&model.DocumentChunk{})
	query, err := applyMetadataFilter(query, filter)
	if err != nil {
		return nil, err
	}

	var models []*model.DocumentChunk
	// pgvector cosine distance: embedding <=> query vector, smallest first
	err = query.
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *PgVectorRepositoryImpl) DeleteByFilter(ctx context.Context, filter map[string]string) (int64, error) {
	query := r.db.WithContext(ctx)
	query, err := applyMetadataFilter(query, filter)
	if err != nil {
		return 0, err
	}

	res := query.Delete(&model.DocumentChunk{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// applyMetadataFilter translates a flat exact-match filter into a JSONB
// containment predicate. An empty filter adds no restriction.
func applyMetadataFilter(query *gorm.DB, filter map[string]string) (*gorm.DB, error) {
	if len(filter) == 0 {
		return query, nil
	}
	encoded, err := json.Marshal(filter)
	if err != nil {
		return nil, err
	}
	return query.Where("metadata @> ?::jsonb", string(encoded)), nil
}
