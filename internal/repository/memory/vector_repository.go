package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/repository/contract"

	"github.com/google/uuid"
)

type storedVector struct {
	chunk     *entity.Chunk
	embedding []float32
}

// VectorRepository is the debug store backend: brute-force cosine similarity
// over an in-process slice. Selected when the debug flag is set, so the
// service runs without a Postgres instance.
type VectorRepository struct {
	mu      sync.RWMutex
	vectors []storedVector
}

func NewVectorRepository() *VectorRepository {
	return &VectorRepository{}
}

var _ contract.VectorRepository = (*VectorRepository)(nil)

func (r *VectorRepository) AddBulk(ctx context.Context, chunks []*entity.EmbeddedChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range chunks {
		stored := &entity.Chunk{
			Id:       c.Chunk.Id,
			Text:     c.Chunk.Text,
			Metadata: c.Chunk.CloneMetadata(),
		}
		if stored.Id == uuid.Nil {
			stored.Id = uuid.New()
		}
		r.vectors = append(r.vectors, storedVector{chunk: stored, embedding: c.Embedding})
	}
	return nil
}

func (r *VectorRepository) SimilaritySearch(ctx context.Context, embedding []float32, limit int, filter map[string]string) ([]*entity.Chunk, error) {
	if limit <= 0 {
		limit = 5
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		chunk *entity.Chunk
		score float64
	}
	candidates := make([]scored, 0, len(r.vectors))
	for _, v := range r.vectors {
		if !matchesFilter(v.chunk.Metadata, filter) {
			continue
		}
		candidates = append(candidates, scored{chunk: v.chunk, score: cosineSimilarity(v.embedding, embedding)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}
	results := make([]*entity.Chunk, limit)
	for i := 0; i < limit; i++ {
		results[i] = candidates[i].chunk
	}
	return results, nil
}

func (r *VectorRepository) DeleteByFilter(ctx context.Context, filter map[string]string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []storedVector
	var deleted int64
	for _, v := range r.vectors {
		if matchesFilter(v.chunk.Metadata, filter) {
			deleted++
			continue
		}
		kept = append(kept, v)
	}
	r.vectors = kept
	return deleted, nil
}

// Count reports stored vectors; used by tests to verify delete semantics.
func (r *VectorRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vectors)
}

func matchesFilter(metadata map[string]string, filter map[string]string) bool {
	for k, v := range filter {
		if metadata[k] != v {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
