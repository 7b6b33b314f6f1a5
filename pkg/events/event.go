package events

import "time"

// Audit event types emitted by the ingestion pipeline.
const (
	TypeFileIngested   = "FILE_INGESTED"
	TypeFilesDeleted   = "FILES_DELETED"
	TypeHistoryCleared = "HISTORY_CLEARED"
)

// Event is the payload published on the audit topic.
type Event struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func NewFileIngested(fileName string, chunkCount int) Event {
	return Event{
		Type: TypeFileIngested,
		Data: map[string]interface{}{
			"file_name":   fileName,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

func NewFilesDeleted(filter map[string]string, deletedCount int64) Event {
	data := map[string]interface{}{
		"deleted_count": deletedCount,
	}
	for k, v := range filter {
		data["filter_"+k] = v
	}
	return Event{
		Type:       TypeFilesDeleted,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func NewHistoryCleared(sessionId string, allSessions bool) Event {
	return Event{
		Type: TypeHistoryCleared,
		Data: map[string]interface{}{
			"session_id":   sessionId,
			"all_sessions": allSessions,
		},
		OccurredAt: time.Now(),
	}
}
