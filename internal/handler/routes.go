package handler

import "net/http"

// Handlers groups every HTTP handler the server mounts
type Handlers struct {
	Health        *HealthHandler
	Tree          *TreeHandler
	Folders       *FolderHandler
	Conversations *ConversationHandler
	Messages      *MessageHandler
}

// RegisterRoutes mounts the API on mux using Go 1.22+ method patterns
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	// Health check
	mux.HandleFunc("GET /health", h.Health.HealthCheck)

	// Tree
	mux.HandleFunc("GET /api/tree", h.Tree.GetTree)

	// Folder routes
	mux.HandleFunc("POST /api/folders", h.Folders.CreateFolder)
	mux.HandleFunc("GET /api/folders", h.Folders.ListRootFolders)
	mux.HandleFunc("GET /api/folders/search", h.Folders.SearchFolders)
	mux.HandleFunc("GET /api/folders/{id}", h.Folders.GetFolder)
	mux.HandleFunc("GET /api/folders/{id}/children", h.Folders.ListChildren)
	mux.HandleFunc("PATCH /api/folders/{id}", h.Folders.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.Folders.DeleteFolder)

	// Conversation routes
	mux.HandleFunc("POST /api/conversations", h.Conversations.CreateConversation)
	mux.HandleFunc("GET /api/conversations", h.Conversations.ListConversations)
	mux.HandleFunc("GET /api/conversations/search", h.Conversations.SearchConversations)
	mux.HandleFunc("GET /api/conversations/by-path", h.Conversations.GetConversationByPath)
	mux.HandleFunc("GET /api/conversations/{id}", h.Conversations.GetConversation)
	mux.HandleFunc("PATCH /api/conversations/{id}", h.Conversations.UpdateConversation)
	mux.HandleFunc("DELETE /api/conversations/{id}", h.Conversations.DeleteConversation)
	mux.HandleFunc("POST /api/conversations/{id}/clear", h.Conversations.ClearConversation)
	mux.HandleFunc("GET /api/conversations/{id}/export", h.Conversations.ExportConversation)
	mux.HandleFunc("POST /api/import", h.Conversations.ImportConversation)

	// Message routes
	mux.HandleFunc("GET /api/conversations/{id}/messages", h.Messages.ListMessages)
	mux.HandleFunc("POST /api/conversations/{id}/messages", h.Messages.CreateMessage)
	mux.HandleFunc("GET /api/messages/{id}", h.Messages.GetMessage)
	mux.HandleFunc("DELETE /api/messages/{id}", h.Messages.DeleteMessage)
	mux.HandleFunc("POST /api/messages/{id}/append", h.Messages.AppendContent)
	mux.HandleFunc("PUT /api/messages/{id}/content", h.Messages.UpdateContent)
	mux.HandleFunc("PUT /api/messages/{id}/status", h.Messages.UpdateStatus)
}
