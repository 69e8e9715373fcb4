package workspace_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadline/internal/domain"
	models "threadline/internal/domain/models/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
)

func TestArchiveRoundTrip(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	info := "exported"
	conv, err := s.conversations.CreateConversation(ctx, &wsSvc.CreateConversationRequest{
		Title: "source",
		Icon:  "box",
		Info:  &info,
	})
	require.NoError(t, err)
	question := s.mkMessage(t, conv, "question")
	time.Sleep(20 * time.Millisecond)
	// A manual edit moves updated_at past end_time
	require.NoError(t, s.messages.UpdateContent(ctx, question.ID, models.TextContent("question, edited")))
	_, err = s.messages.InsertMessage(ctx, &wsSvc.InsertMessageRequest{
		ConversationID: conv.ID,
		Role:           models.RoleTool,
		Content:        models.StructuredContent("ls", json.RawMessage(`{"exit":0}`)),
	})
	require.NoError(t, err)

	data, err := s.archive.Export(ctx, conv.ID)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: source")

	dst := s.mkFolder(t, "imports", nil)
	imported, err := s.archive.Import(ctx, data, &dst.ID)
	require.NoError(t, err)
	assert.Equal(t, "/imports/source", imported.Path)
	assert.Equal(t, "box", imported.Icon)
	require.NotNil(t, imported.Info)
	assert.Equal(t, "exported", *imported.Info)

	msgs, err := s.messages.ListByConversation(ctx, imported.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "question, edited", msgs[0].Content.Text)
	assert.Equal(t, "/imports/source", msgs[0].ConversationPath)
	assert.Equal(t, "ls", msgs[1].Content.Source)
	assert.JSONEq(t, `{"exit":0}`, string(msgs[1].Content.Data))

	original, err := s.messages.ListByConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.True(t, msgs[0].CreatedAt.Equal(original[0].CreatedAt))
	assert.True(t, msgs[0].EndTime.Equal(original[0].EndTime))
	assert.True(t, original[0].UpdatedAt.After(original[0].EndTime))
	assert.True(t, msgs[0].UpdatedAt.Equal(original[0].UpdatedAt),
		"updated_at %v, want %v", msgs[0].UpdatedAt, original[0].UpdatedAt)
}

func TestArchiveImportWithoutUpdatedAtUsesEndTime(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	data := []byte(`version: 1
conversation:
  title: legacy
messages:
  - role: user
    status: complete
    kind: text
    text: hi
    created_at: 2025-01-01T10:00:00Z
    start_time: 2025-01-01T10:00:00Z
    end_time: 2025-01-01T10:00:05Z
`)
	conv, err := s.archive.Import(ctx, data, nil)
	require.NoError(t, err)

	msgs, err := s.messages.ListByConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	want := time.Date(2025, 1, 1, 10, 0, 5, 0, time.UTC)
	assert.True(t, msgs[0].UpdatedAt.Equal(want), "updated_at %v", msgs[0].UpdatedAt)
}

func TestArchiveImportConflictRollsBack(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	conv := s.mkConversation(t, "dup", nil)
	s.mkMessage(t, conv, "one")

	data, err := s.archive.Export(ctx, conv.ID)
	require.NoError(t, err)

	_, err = s.archive.Import(ctx, data, nil)
	assert.ErrorIs(t, err, domain.ErrConversationPathExists)

	roots, err := s.conversations.ListWithoutFolder(ctx)
	require.NoError(t, err)
	assert.Len(t, roots, 1)
}

func TestArchiveImportRejectsBadInput(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.archive.Import(ctx, []byte("version: 99\n"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.archive.Import(ctx, []byte("version: [1"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad := []byte("version: 1\nconversation:\n  title: t\nmessages:\n  - role: user\n    status: complete\n    kind: structured\n    data: '{oops'\n")
	_, err = s.archive.Import(ctx, bad, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
