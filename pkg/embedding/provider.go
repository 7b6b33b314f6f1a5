package embedding

import "context"

// Input types hint the provider whether the text is a stored document or a
// retrieval query; Cohere scores improve when the two are distinguished.
const (
	InputTypeDocument = "search_document"
	InputTypeQuery    = "search_query"
)

// Provider generates text embeddings.
type Provider interface {
	Embed(ctx context.Context, texts []string, inputType string) ([][]float32, error)
}
