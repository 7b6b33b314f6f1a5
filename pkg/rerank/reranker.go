package rerank

import "context"

// Result is one reranked document: Index points into the candidate slice
// passed to Rerank, Score is the cross-encoder relevance score.
type Result struct {
	Index int
	Score float64
}

// Reranker scores candidate documents against the raw query text. More
// accurate and more expensive than embedding similarity, so it only ever
// sees the pre-filtered candidate set.
type Reranker interface {
	Rerank(ctx context.Context, query string, documents []string) ([]Result, error)
}
