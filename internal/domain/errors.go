package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Entity kinds sharing the path namespace, plus messages.
const (
	KindFolder       = "folder"
	KindConversation = "conversation"
	KindMessage      = "message"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound               = errors.New("not found")
	ErrConflict               = errors.New("already exists")
	ErrFolderPathExists       = errors.New("folder path already exists")
	ErrConversationPathExists = errors.New("conversation path already exists")
	ErrValidation             = errors.New("validation failed")
	ErrCycle                  = errors.New("folder cannot be moved into its own subtree")
	ErrTransaction            = errors.New("transaction failed")
	ErrPayloadDecode          = errors.New("message payload could not be decoded")
)

// PathExistsError reports that a path is already held by an entity of Kind.
// The caller renders Kind and Path verbatim; no auto-renaming is attempted.
type PathExistsError struct {
	Kind       string // KindFolder or KindConversation
	Path       string
	ResourceID string // ID of the entity holding the path, when known
}

func (e *PathExistsError) Error() string {
	return fmt.Sprintf("%s path %q already exists", e.Kind, e.Path)
}

func (e *PathExistsError) StatusCode() int { return http.StatusConflict }

// Is allows errors.Is() to match ErrConflict and the kind-specific sentinel
func (e *PathExistsError) Is(target error) bool {
	switch target {
	case ErrConflict:
		return true
	case ErrFolderPathExists:
		return e.Kind == KindFolder
	case ErrConversationPathExists:
		return e.Kind == KindConversation
	}
	return false
}

// NewPathExistsError creates a PathExistsError for the namespace holding path
func NewPathExistsError(kind, path, resourceID string) *PathExistsError {
	return &PathExistsError{Kind: kind, Path: path, ResourceID: resourceID}
}

// NotFoundError indicates an entity of Kind with ID does not exist
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Kind, e.ID)
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError creates a NotFoundError
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// ValidationError indicates invalid input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// CycleError rejects moving a folder under itself or one of its descendants
type CycleError struct {
	FolderID string
	TargetID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("folder %s cannot be moved under %s: %v", e.FolderID, e.TargetID, ErrCycle)
}

func (e *CycleError) StatusCode() int { return http.StatusBadRequest }

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle || target == ErrValidation
}

// TransactionError wraps a store driver failure. The driver error is
// surfaced unchanged through Unwrap.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransactionError) StatusCode() int { return http.StatusInternalServerError }

func (e *TransactionError) Unwrap() error { return e.Err }

func (e *TransactionError) Is(target error) bool { return target == ErrTransaction }

// PayloadDecodeError indicates a stored message content field is corrupt
type PayloadDecodeError struct {
	MessageID string
	Err       error
}

func (e *PayloadDecodeError) Error() string {
	if e.MessageID == "" {
		return fmt.Sprintf("decode message payload: %v", e.Err)
	}
	return fmt.Sprintf("decode payload of message %s: %v", e.MessageID, e.Err)
}

func (e *PayloadDecodeError) StatusCode() int { return http.StatusUnprocessableEntity }

func (e *PayloadDecodeError) Unwrap() error { return e.Err }

func (e *PayloadDecodeError) Is(target error) bool { return target == ErrPayloadDecode }
