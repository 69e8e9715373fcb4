package workspace

import (
	"time"
)

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message statuses
const (
	StatusPending   = "pending"
	StatusStreaming = "streaming"
	StatusComplete  = "complete"
	StatusCancelled = "cancelled"
	StatusError     = "error"
)

// Roles lists every accepted message role
var Roles = []interface{}{RoleSystem, RoleUser, RoleAssistant, RoleTool}

// Statuses lists every accepted message status
var Statuses = []interface{}{StatusPending, StatusStreaming, StatusComplete, StatusCancelled, StatusError}

// Message belongs to one conversation. ConversationPath is a denormalized
// copy of the owning conversation's path and is rewritten whenever that
// path changes.
type Message struct {
	ID               string    `json:"id" db:"id"`
	ConversationID   string    `json:"conversation_id" db:"conversation_id"`
	ConversationPath string    `json:"conversation_path" db:"conversation_path"`
	Role             string    `json:"role" db:"role"`
	Content          Content   `json:"content" db:"content"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
	StartTime        time.Time `json:"start_time" db:"start_time"`
	EndTime          time.Time `json:"end_time" db:"end_time"`
}
