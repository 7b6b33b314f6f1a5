package contract

import (
	"context"

	"knowledgegpt-be/internal/entity"
)

// VectorRepository is the store-backend contract shared by the managed
// (pgvector) and debug (in-memory) implementations. Selection happens once
// at container construction, never per call.
type VectorRepository interface {
	// AddBulk inserts embedded chunks. Stored vectors are never mutated in
	// place; delete and re-insert are the only mutation paths.
	AddBulk(ctx context.Context, chunks []*entity.EmbeddedChunk) error

	// SimilaritySearch returns the limit nearest chunks to the query
	// embedding, best first, restricted to chunks whose metadata contains
	// every filter pair. An empty filter matches all chunks.
	SimilaritySearch(ctx context.Context, embedding []float32, limit int, filter map[string]string) ([]*entity.Chunk, error)

	// DeleteByFilter removes every chunk matching the conjunctive
	// exact-match filter and reports how many rows went away. The caller
	// guarantees a non-empty filter.
	DeleteByFilter(ctx context.Context, filter map[string]string) (int64, error)
}
