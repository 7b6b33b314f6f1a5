package mapper

import (
	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.DocumentChunk) *entity.Chunk {
	if c == nil {
		return nil
	}
	return &entity.Chunk{
		Id:       c.Id,
		Text:     c.Document,
		Metadata: jsonMapToStrings(c.Metadata),
	}
}

func (m *ChunkMapper) ToModel(c *entity.EmbeddedChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}
	return &model.DocumentChunk{
		Id:        c.Chunk.Id,
		Document:  c.Chunk.Text,
		Embedding: pgvector.NewVector(c.Embedding),
		Metadata:  stringsToJSONMap(c.Chunk.Metadata),
	}
}

func (m *ChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.Chunk {
	entities := make([]*entity.Chunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func jsonMapToStrings(in datatypes.JSONMap) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func stringsToJSONMap(in map[string]string) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
