package workspace

import (
	"time"
)

// Conversation lives in the same path namespace as folders
type Conversation struct {
	ID         string    `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Path       string    `json:"path" db:"path"`
	FolderID   *string   `json:"folder_id" db:"folder_id"` // NULL = root level
	Icon       string    `json:"icon" db:"icon"`
	Info       *string   `json:"info,omitempty" db:"info"`
	TemplateID string    `json:"template_id" db:"template_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
