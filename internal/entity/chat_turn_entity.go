package entity

import "time"

const (
	ChatRoleHuman = "human"
	ChatRoleAI    = "ai"
)

// ChatTurn is a single (role, message) entry in a session's conversation
// history. Persisted externally, scoped by SessionId.
type ChatTurn struct {
	SessionId string
	Role      string
	Message   string
	CreatedAt time.Time
}
