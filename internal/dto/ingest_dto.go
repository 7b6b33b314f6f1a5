package dto

import "time"

type FileUploadInfo struct {
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
}

type IngestResponse struct {
	Message        string            `json:"message"`
	Metadata       map[string]string `json:"metadata"`
	FileType       string            `json:"file_type"`
	FileUploadInfo FileUploadInfo    `json:"file_upload_info"`
}

// IngestResult is the service-level outcome of one ingestion.
type IngestResult struct {
	FileName     string
	ChunksStored int
	FileRecordId string
}

type DeleteFilesResponse struct {
	DeletedCount int64 `json:"deleted_count"`
	Acknowledged bool  `json:"acknowledged"`
}

type FileRecordResponse struct {
	Id        string            `json:"id"`
	FileName  string            `json:"file_name"`
	Metadata  map[string]string `json:"metadata"`
	DateAdded time.Time         `json:"date_added"`
}

type ListFilesResponse struct {
	Files []FileRecordResponse `json:"files"`
}
