package entity

import (
	"time"

	"github.com/google/uuid"
)

// Reserved metadata keys attached by the document loaders. They always win
// over caller-supplied metadata because file_name is the join key between
// the vector store and the file-record store.
const (
	MetaFileName   = "file_name"
	MetaPageNo     = "page_no"
	MetaTotalPages = "total_pages"
)

// Chunk is the unit of embedding and retrieval: a bounded span of document
// text plus its provenance metadata. Immutable once produced by a loader.
type Chunk struct {
	Id       uuid.UUID
	Text     string
	Metadata map[string]string
}

// FileName returns the join key carried by every persisted chunk.
func (c *Chunk) FileName() string {
	return c.Metadata[MetaFileName]
}

// CloneMetadata returns a copy so callers can strip keys without touching
// the stored chunk.
func (c *Chunk) CloneMetadata() map[string]string {
	out := make(map[string]string, len(c.Metadata))
	for k, v := range c.Metadata {
		out[k] = v
	}
	return out
}

// ScoredChunk pairs a chunk with its relevance score. SimilarityRank keeps
// the position from the first-stage similarity search so reranked results
// can break score ties stably.
type ScoredChunk struct {
	Chunk          *Chunk
	Score          float64
	SimilarityRank int
}

// EmbeddedChunk is a chunk together with its embedding, ready for insertion
// into the vector store.
type EmbeddedChunk struct {
	Chunk     *Chunk
	Embedding []float32
}

// FileRecord represents one ingested source file in the metadata store.
type FileRecord struct {
	Id        uuid.UUID
	FileName  string
	Metadata  map[string]string
	DateAdded time.Time
}
