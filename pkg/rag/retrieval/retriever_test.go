package retrieval

import (
	"context"
	"testing"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/repository/memory"
	"knowledgegpt-be/pkg/rerank"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps known texts to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string, inputType string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := f.vectors[t]; ok {
			out[i] = v
		} else {
			out[i] = []float32{0, 0, 1}
		}
	}
	return out, nil
}

// fakeReranker scores documents from a lookup table; unknown documents
// score zero.
type fakeReranker struct {
	scores map[string]float64
}

func (f *fakeReranker) Rerank(ctx context.Context, query string, documents []string) ([]rerank.Result, error) {
	results := make([]rerank.Result, len(documents))
	for i, d := range documents {
		results[i] = rerank.Result{Index: i, Score: f.scores[d]}
	}
	return results, nil
}

func seedStore(t *testing.T, store *memory.VectorRepository) {
	t.Helper()
	chunks := []*entity.EmbeddedChunk{
		{
			Chunk: &entity.Chunk{Text: "refunds are issued within 30 days", Metadata: map[string]string{"file_name": "policy.pdf", "category": "policy"}},
			Embedding: []float32{1, 0, 0},
		},
		{
			Chunk: &entity.Chunk{Text: "office hours are 9 to 5", Metadata: map[string]string{"file_name": "handbook.pdf", "category": "hr"}},
			Embedding: []float32{0.9, 0.1, 0},
		},
		{
			Chunk: &entity.Chunk{Text: "the refund form needs a receipt", Metadata: map[string]string{"file_name": "policy.pdf", "category": "policy"}},
			Embedding: []float32{0.8, 0.2, 0},
		},
	}
	require.NoError(t, store.AddBulk(context.Background(), chunks))
}

func TestRetrieve_RerankReordersCandidates(t *testing.T) {
	store := memory.NewVectorRepository()
	seedStore(t, store)

	embedder := &fakeEmbedder{vectors: map[string][]float32{"refund policy?": {1, 0, 0}}}
	reranker := &fakeReranker{scores: map[string]float64{
		"refunds are issued within 30 days": 0.2,
		"office hours are 9 to 5":           0.1,
		"the refund form needs a receipt":   0.9,
	}}

	r := NewRetriever(embedder, reranker, store)
	got, err := r.Retrieve(context.Background(), "refund policy?", nil, 2, 3)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "the refund form needs a receipt", got[0].Chunk.Text)
	assert.Equal(t, "refunds are issued within 30 days", got[1].Chunk.Text)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestRetrieve_FilterRestrictsCandidates(t *testing.T) {
	store := memory.NewVectorRepository()
	seedStore(t, store)

	embedder := &fakeEmbedder{vectors: map[string][]float32{"anything": {1, 0, 0}}}
	reranker := &fakeReranker{scores: map[string]float64{}}

	r := NewRetriever(embedder, reranker, store)
	got, err := r.Retrieve(context.Background(), "anything", map[string]string{"category": "policy"}, 10, 10)
	require.NoError(t, err)

	require.Len(t, got, 2)
	for _, sc := range got {
		assert.Equal(t, "policy", sc.Chunk.Metadata["category"])
	}
}

func TestRetrieve_TiedScoresKeepSimilarityOrder(t *testing.T) {
	store := memory.NewVectorRepository()
	seedStore(t, store)

	embedder := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 0, 0}}}
	// Every candidate ties; the similarity order must survive.
	reranker := &fakeReranker{scores: map[string]float64{
		"refunds are issued within 30 days": 0.5,
		"office hours are 9 to 5":           0.5,
		"the refund form needs a receipt":   0.5,
	}}

	r := NewRetriever(embedder, reranker, store)
	got, err := r.Retrieve(context.Background(), "q", nil, 3, 3)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "refunds are issued within 30 days", got[0].Chunk.Text)
	assert.Equal(t, "office hours are 9 to 5", got[1].Chunk.Text)
	assert.Equal(t, "the refund form needs a receipt", got[2].Chunk.Text)
}

func TestRetrieve_FetchKBelowTopKIsRaised(t *testing.T) {
	store := memory.NewVectorRepository()
	seedStore(t, store)

	embedder := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 0, 0}}}
	reranker := &fakeReranker{scores: map[string]float64{}}

	r := NewRetriever(embedder, reranker, store)
	got, err := r.Retrieve(context.Background(), "q", nil, 3, 1)
	require.NoError(t, err)

	// fetch_k=1 would starve the reranker; the retriever raises it to top_k.
	assert.Len(t, got, 3)
}

func TestRetrieve_EmptyStoreReturnsEmpty(t *testing.T) {
	store := memory.NewVectorRepository()
	embedder := &fakeEmbedder{vectors: map[string][]float32{}}
	reranker := &fakeReranker{scores: map[string]float64{}}

	r := NewRetriever(embedder, reranker, store)
	got, err := r.Retrieve(context.Background(), "q", nil, 5, 25)
	require.NoError(t, err)
	assert.Empty(t, got)
}
