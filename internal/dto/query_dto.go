package dto

type QueryRequest struct {
	Query     string            `json:"query" validate:"required"`
	Filters   map[string]string `json:"filters"`
	SessionId string            `json:"session_id" validate:"required"`
}

// SourceDocument is a retrieved chunk as exposed to clients. Metadata never
// carries internal storage identifiers.
type SourceDocument struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

type QueryResponse struct {
	Query           string           `json:"query"`
	Response        string           `json:"response"`
	SourceDocuments []SourceDocument `json:"source_documents"`
	TookMs          int64            `json:"took_ms"`
}

type ClearHistoryResponse struct {
	Message string `json:"message"`
}
