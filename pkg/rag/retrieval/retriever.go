package retrieval

import (
	"context"
	"fmt"
	"sort"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/repository/contract"
	"knowledgegpt-be/pkg/embedding"
	"knowledgegpt-be/pkg/rerank"
)

// Retriever runs the two-stage retrieval pipeline: a cheap similarity
// search over fetchK candidates, then a cross-encoder rerank that keeps the
// topK best. Safe to share across concurrent requests; it carries no
// per-request state.
type Retriever struct {
	embedder embedding.Provider
	reranker rerank.Reranker
	store    contract.VectorRepository
}

func NewRetriever(embedder embedding.Provider, reranker rerank.Reranker, store contract.VectorRepository) *Retriever {
	return &Retriever{
		embedder: embedder,
		reranker: reranker,
		store:    store,
	}
}

// Retrieve returns up to topK chunks ordered best-first. Filters restrict
// candidates by conjunctive exact-match metadata; an empty filter matches
// everything. A fetchK below topK is raised to topK.
func (r *Retriever) Retrieve(ctx context.Context, query string, filters map[string]string, topK, fetchK int) ([]*entity.ScoredChunk, error) {
	if topK <= 0 {
		topK = 4
	}
	if fetchK < topK {
		fetchK = topK
	}

	vectors, err := r.embedder.Embed(ctx, []string{query}, embedding.InputTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vectors))
	}

	candidates, err := r.store.SimilaritySearch(ctx, vectors[0], fetchK, filters)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	if len(candidates) == 0 {
		return []*entity.ScoredChunk{}, nil
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}

	results, err := r.reranker.Rerank(ctx, query, texts)
	if err != nil {
		return nil, fmt.Errorf("rerank: %w", err)
	}

	// Order by rerank score descending; exact ties keep the original
	// similarity rank.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].Index < results[j].Index
		}
		return results[i].Score > results[j].Score
	})

	if topK > len(results) {
		topK = len(results)
	}
	ranked := make([]*entity.ScoredChunk, 0, topK)
	for _, res := range results[:topK] {
		if res.Index < 0 || res.Index >= len(candidates) {
			continue
		}
		ranked = append(ranked, &entity.ScoredChunk{
			Chunk:          candidates[res.Index],
			Score:          res.Score,
			SimilarityRank: res.Index,
		})
	}
	return ranked, nil
}
