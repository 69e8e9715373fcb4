package workspace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	models "threadline/internal/domain/models/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
	"threadline/internal/service/workspace"
	"threadline/internal/testutil"
)

type testServices struct {
	store         *testutil.Store
	folders       wsSvc.FolderService
	conversations wsSvc.ConversationService
	messages      wsSvc.MessageService
	search        wsSvc.SearchService
	tree          wsSvc.TreeService
	archive       wsSvc.ArchiveService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	store := testutil.NewStore(t)

	namespace := workspace.NewPathNamespace(store.Namespace)
	cascade := workspace.NewCascadeRewriter(store.Folders, store.Conversations, store.Messages, store.Logger)
	folders := workspace.NewFolderService(store.Folders, store.Conversations, store.Messages, namespace, cascade, store.TxManager, store.Logger)
	conversations := workspace.NewConversationService(store.Conversations, store.Folders, store.Messages, namespace, store.TxManager, store.Logger)
	messages := workspace.NewMessageService(store.Messages, store.Conversations, store.TxManager, store.Logger)

	return &testServices{
		store:         store,
		folders:       folders,
		conversations: conversations,
		messages:      messages,
		search:        workspace.NewSearchService(store.Conversations, store.Folders, store.Logger),
		tree:          workspace.NewTreeService(store.Folders, store.Conversations, store.Logger),
		archive:       workspace.NewArchiveService(conversations, messages, store.TxManager, store.Logger),
	}
}

func (s *testServices) mkFolder(t *testing.T, name string, parent *models.Folder) *models.Folder {
	t.Helper()
	req := &wsSvc.CreateFolderRequest{Name: name}
	if parent != nil {
		req.ParentID = &parent.ID
	}
	folder, err := s.folders.CreateFolder(context.Background(), req)
	require.NoError(t, err)
	return folder
}

func (s *testServices) mkConversation(t *testing.T, title string, folder *models.Folder) *models.Conversation {
	t.Helper()
	req := &wsSvc.CreateConversationRequest{Title: title}
	if folder != nil {
		req.FolderID = &folder.ID
	}
	conv, err := s.conversations.CreateConversation(context.Background(), req)
	require.NoError(t, err)
	return conv
}

func (s *testServices) mkMessage(t *testing.T, conv *models.Conversation, text string) *models.Message {
	t.Helper()
	msg, err := s.messages.InsertMessage(context.Background(), &wsSvc.InsertMessageRequest{
		ConversationID: conv.ID,
		Role:           models.RoleUser,
		Content:        models.TextContent(text),
	})
	require.NoError(t, err)
	return msg
}

func (s *testServices) folderPath(t *testing.T, id string) string {
	t.Helper()
	folder, err := s.store.Folders.GetByID(context.Background(), id)
	require.NoError(t, err)
	return folder.Path
}

func (s *testServices) conversationPath(t *testing.T, id string) string {
	t.Helper()
	conv, err := s.store.Conversations.GetByID(context.Background(), id)
	require.NoError(t, err)
	return conv.Path
}

func (s *testServices) messagePath(t *testing.T, id string) string {
	t.Helper()
	msg, err := s.store.Messages.GetByID(context.Background(), id)
	require.NoError(t, err)
	return msg.ConversationPath
}

func strPtr(s string) *string { return &s }
