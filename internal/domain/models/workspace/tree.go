package workspace

import "time"

// TreeNode represents the root of the workspace tree
type TreeNode struct {
	Folders       []*FolderTreeNode      `json:"folders"`
	Conversations []ConversationTreeNode `json:"conversations"`
}

// FolderTreeNode represents a folder in the tree with nested children
type FolderTreeNode struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Path          string                 `json:"path"`
	ParentID      *string                `json:"parent_id"`
	CreatedAt     time.Time              `json:"created_at"`
	Folders       []*FolderTreeNode      `json:"folders"`
	Conversations []ConversationTreeNode `json:"conversations"`
}

// ConversationTreeNode represents a conversation in the tree (no messages)
type ConversationTreeNode struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	Icon      string    `json:"icon"`
	FolderID  *string   `json:"folder_id"`
	UpdatedAt time.Time `json:"updated_at"`
}
