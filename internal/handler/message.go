package handler

import (
	"log/slog"
	"net/http"

	models "threadline/internal/domain/models/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
	"threadline/internal/httputil"
)

// MessageHandler handles message HTTP requests
type MessageHandler struct {
	msgService wsSvc.MessageService
	logger     *slog.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(msgService wsSvc.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		msgService: msgService,
		logger:     logger,
	}
}

// CreateMessageRequest is the body of POST /api/conversations/{id}/messages
type CreateMessageRequest struct {
	Role    string         `json:"role"`
	Content models.Content `json:"content"`
	Status  string         `json:"status,omitempty"`
}

// AppendContentRequest carries a streamed delta
type AppendContentRequest struct {
	Delta string `json:"delta"`
}

// UpdateContentRequest replaces message content
type UpdateContentRequest struct {
	Content models.Content `json:"content"`
}

// UpdateStatusRequest sets message status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListMessages lists a conversation's messages in creation order
// GET /api/conversations/{id}/messages
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Conversation")
	if !ok {
		return
	}

	msgs, err := h.msgService.ListByConversation(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, msgs)
}

// CreateMessage inserts a message into a conversation
// POST /api/conversations/{id}/messages
func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Conversation")
	if !ok {
		return
	}

	var req CreateMessageRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	msg, err := h.msgService.InsertMessage(r.Context(), &wsSvc.InsertMessageRequest{
		ConversationID: id,
		Role:           req.Role,
		Content:        req.Content,
		Status:         req.Status,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, msg)
}

// GetMessage retrieves a message
// GET /api/messages/{id}
func (h *MessageHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Message")
	if !ok {
		return
	}

	msg, err := h.msgService.GetMessage(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, msg)
}

// AppendContent appends a streamed delta
// POST /api/messages/{id}/append
func (h *MessageHandler) AppendContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Message")
	if !ok {
		return
	}

	var req AppendContentRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	msg, err := h.msgService.AddContent(r.Context(), id, req.Delta)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, msg)
}

// UpdateContent replaces content after a manual edit
// PUT /api/messages/{id}/content
func (h *MessageHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Message")
	if !ok {
		return
	}

	var req UpdateContentRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.msgService.UpdateContent(r.Context(), id, req.Content); err != nil {
		handleError(w, err)
		return
	}
	h.respondMessage(w, r, id)
}

// UpdateStatus sets the message status
// PUT /api/messages/{id}/status
func (h *MessageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Message")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.msgService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		handleError(w, err)
		return
	}
	h.respondMessage(w, r, id)
}

// DeleteMessage deletes a message
// DELETE /api/messages/{id}
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Message")
	if !ok {
		return
	}

	if err := h.msgService.DeleteMessage(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MessageHandler) respondMessage(w http.ResponseWriter, r *http.Request, id string) {
	msg, err := h.msgService.GetMessage(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, msg)
}
