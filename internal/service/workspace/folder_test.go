package workspace_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadline/internal/domain"
	wsSvc "threadline/internal/domain/services/workspace"
)

func TestCreateFolderPaths(t *testing.T) {
	s := newTestServices(t)

	root := s.mkFolder(t, "Work", nil)
	child := s.mkFolder(t, "Q3", root)
	grandchild := s.mkFolder(t, "50% done_ok", child)

	assert.Equal(t, "/Work", root.Path)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, "/Work/Q3", child.Path)
	assert.Equal(t, root.ID, *child.ParentID)
	assert.Equal(t, "/Work/Q3/50% done_ok", grandchild.Path)
}

func TestCreateFolderRejectsInvalidNames(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	for _, name := range []string{"", "   ", "a/b", "/"} {
		t.Run(fmt.Sprintf("%q", name), func(t *testing.T) {
			_, err := s.folders.CreateFolder(ctx, &wsSvc.CreateFolderRequest{Name: name})
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateFolderMissingParent(t *testing.T) {
	s := newTestServices(t)

	_, err := s.folders.CreateFolder(context.Background(), &wsSvc.CreateFolderRequest{
		Name:     "orphan",
		ParentID: strPtr("does-not-exist"),
	})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.KindFolder, notFound.Kind)
	assert.Equal(t, "does-not-exist", notFound.ID)
}

func TestCreateFolderPathExistsAcrossKinds(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	existing := s.mkFolder(t, "A", nil)
	conv := s.mkConversation(t, "Chat", nil)

	_, err := s.folders.CreateFolder(ctx, &wsSvc.CreateFolderRequest{Name: "A"})
	var pathErr *domain.PathExistsError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, domain.KindFolder, pathErr.Kind)
	assert.Equal(t, "/A", pathErr.Path)
	assert.Equal(t, existing.ID, pathErr.ResourceID)
	assert.ErrorIs(t, err, domain.ErrFolderPathExists)

	_, err = s.folders.CreateFolder(ctx, &wsSvc.CreateFolderRequest{Name: "Chat"})
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, domain.KindConversation, pathErr.Kind)
	assert.Equal(t, conv.ID, pathErr.ResourceID)
	assert.ErrorIs(t, err, domain.ErrConversationPathExists)
}

func TestRenameFolderCascades(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a := s.mkFolder(t, "A", nil)
	b := s.mkFolder(t, "B", a)
	c := s.mkFolder(t, "C", b)
	conv := s.mkConversation(t, "x", b)
	deep := s.mkConversation(t, "y", c)
	msg := s.mkMessage(t, conv, "hello")
	deepMsg := s.mkMessage(t, deep, "world")

	// Sibling sharing a string prefix but not a path boundary
	ab := s.mkFolder(t, "AB", nil)
	abConv := s.mkConversation(t, "z", ab)
	abMsg := s.mkMessage(t, abConv, "untouched")

	renamed, err := s.folders.RenameOrMoveFolder(ctx, a.ID, &wsSvc.RenameOrMoveFolderRequest{Name: "Z"})
	require.NoError(t, err)
	assert.Equal(t, "/Z", renamed.Path)

	assert.Equal(t, "/Z", s.folderPath(t, a.ID))
	assert.Equal(t, "/Z/B", s.folderPath(t, b.ID))
	assert.Equal(t, "/Z/B/C", s.folderPath(t, c.ID))
	assert.Equal(t, "/Z/B/x", s.conversationPath(t, conv.ID))
	assert.Equal(t, "/Z/B/C/y", s.conversationPath(t, deep.ID))
	assert.Equal(t, "/Z/B/x", s.messagePath(t, msg.ID))
	assert.Equal(t, "/Z/B/C/y", s.messagePath(t, deepMsg.ID))

	assert.Equal(t, "/AB", s.folderPath(t, ab.ID))
	assert.Equal(t, "/AB/z", s.conversationPath(t, abConv.ID))
	assert.Equal(t, "/AB/z", s.messagePath(t, abMsg.ID))
}

func TestMoveFolderUnderNewParent(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	src := s.mkFolder(t, "src", nil)
	dst := s.mkFolder(t, "dst", nil)
	conv := s.mkConversation(t, "notes", src)
	msg := s.mkMessage(t, conv, "hi")

	moved, err := s.folders.RenameOrMoveFolder(ctx, src.ID, &wsSvc.RenameOrMoveFolderRequest{
		Name:     "src",
		ParentID: &dst.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "/dst/src", moved.Path)
	assert.Equal(t, dst.ID, *moved.ParentID)
	assert.Equal(t, "/dst/src/notes", s.conversationPath(t, conv.ID))
	assert.Equal(t, "/dst/src/notes", s.messagePath(t, msg.ID))

	// Back to the root with an empty parent ID
	moved, err = s.folders.RenameOrMoveFolder(ctx, src.ID, &wsSvc.RenameOrMoveFolderRequest{
		Name:     "src",
		ParentID: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "/src", moved.Path)
	assert.Nil(t, moved.ParentID)
	assert.Equal(t, "/src/notes", s.messagePath(t, msg.ID))
}

func TestRenameFolderSamePathSkipsCascade(t *testing.T) {
	s := newTestServices(t)

	a := s.mkFolder(t, "A", nil)
	conv := s.mkConversation(t, "x", a)

	updated, err := s.folders.RenameOrMoveFolder(context.Background(), a.ID, &wsSvc.RenameOrMoveFolderRequest{Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, "/A", updated.Path)
	assert.False(t, updated.UpdatedAt.Before(a.UpdatedAt))
	assert.Equal(t, "/A/x", s.conversationPath(t, conv.ID))
}

func TestRenameFolderConflict(t *testing.T) {
	s := newTestServices(t)

	a := s.mkFolder(t, "A", nil)
	child := s.mkFolder(t, "child", a)
	s.mkConversation(t, "B", nil)

	_, err := s.folders.RenameOrMoveFolder(context.Background(), a.ID, &wsSvc.RenameOrMoveFolderRequest{Name: "B"})
	assert.ErrorIs(t, err, domain.ErrConversationPathExists)
	assert.Equal(t, "/A", s.folderPath(t, a.ID))
	assert.Equal(t, "/A/child", s.folderPath(t, child.ID))
}

func TestMoveFolderIntoOwnSubtreeIsRejected(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a := s.mkFolder(t, "A", nil)
	b := s.mkFolder(t, "B", a)

	_, err := s.folders.RenameOrMoveFolder(ctx, a.ID, &wsSvc.RenameOrMoveFolderRequest{Name: "A", ParentID: &b.ID})
	assert.ErrorIs(t, err, domain.ErrCycle)

	_, err = s.folders.RenameOrMoveFolder(ctx, a.ID, &wsSvc.RenameOrMoveFolderRequest{Name: "A", ParentID: &a.ID})
	assert.ErrorIs(t, err, domain.ErrCycle)

	assert.Equal(t, "/A/B", s.folderPath(t, b.ID))
}

func TestRenameFolderRollsBackOnCascadeFailure(t *testing.T) {
	s := newTestServices(t)
	s.store.SQLiteOnly(t)
	ctx := context.Background()

	a := s.mkFolder(t, "A", nil)
	b := s.mkFolder(t, "B", a)
	conv := s.mkConversation(t, "x", b)
	msg := s.mkMessage(t, conv, "hello")

	_, err := s.store.DB.Exec(fmt.Sprintf(`
		CREATE TRIGGER fail_message_rewrite BEFORE UPDATE OF conversation_path ON %s
		BEGIN SELECT RAISE(ABORT, 'injected failure'); END
	`, s.store.Config.Tables.Messages))
	require.NoError(t, err)

	_, err = s.folders.RenameOrMoveFolder(ctx, a.ID, &wsSvc.RenameOrMoveFolderRequest{Name: "Z"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransaction)

	var txErr *domain.TransactionError
	require.True(t, errors.As(err, &txErr))
	assert.Contains(t, txErr.Err.Error(), "injected failure")

	assert.Equal(t, "/A", s.folderPath(t, a.ID))
	assert.Equal(t, "/A/B", s.folderPath(t, b.ID))
	assert.Equal(t, "/A/B/x", s.conversationPath(t, conv.ID))
	assert.Equal(t, "/A/B/x", s.messagePath(t, msg.ID))
}

func TestRenameFolderRejectsOverlongDescendants(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	root := s.mkFolder(t, "a", nil)
	parent := root
	for i := 0; i < 16; i++ {
		parent = s.mkFolder(t, strings.Repeat(string(rune('b'+i)), 250), parent)
	}
	conv := s.mkConversation(t, "c", parent)
	deepest := s.conversationPath(t, conv.ID)
	require.Equal(t, 2+16*251+2, len(deepest))

	// The new root path itself is short; only the descendants overflow
	_, err := s.folders.RenameOrMoveFolder(ctx, root.ID, &wsSvc.RenameOrMoveFolderRequest{Name: strings.Repeat("r", 100)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "/a", s.folderPath(t, root.ID))
	assert.Equal(t, deepest, s.conversationPath(t, conv.ID))

	renamed, err := s.folders.RenameOrMoveFolder(ctx, root.ID, &wsSvc.RenameOrMoveFolderRequest{Name: strings.Repeat("r", 50)})
	require.NoError(t, err)
	assert.Equal(t, "/"+strings.Repeat("r", 50), renamed.Path)
	assert.Equal(t, renamed.Path+deepest[2:], s.conversationPath(t, conv.ID))
}

func TestDeleteFolderRemovesSubtree(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a := s.mkFolder(t, "A", nil)
	b := s.mkFolder(t, "B", a)
	conv := s.mkConversation(t, "x", b)
	msg := s.mkMessage(t, conv, "hello")

	keep := s.mkFolder(t, "AB", nil)
	keepConv := s.mkConversation(t, "y", keep)
	keepMsg := s.mkMessage(t, keepConv, "stay")

	require.NoError(t, s.folders.DeleteFolder(ctx, a.ID))

	_, err := s.folders.GetFolder(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.folders.GetFolder(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.conversations.GetConversation(ctx, conv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.messages.GetMessage(ctx, msg.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, "/AB", s.folderPath(t, keep.ID))
	assert.Equal(t, "/AB/y", s.conversationPath(t, keepConv.ID))
	assert.Equal(t, "/AB/y", s.messagePath(t, keepMsg.ID))

	assert.ErrorIs(t, s.folders.DeleteFolder(ctx, a.ID), domain.ErrNotFound)
}

func TestListFolders(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	b := s.mkFolder(t, "b", nil)
	s.mkFolder(t, "a", nil)
	s.mkFolder(t, "child", b)

	roots, err := s.folders.ListRootFolders(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].Name)
	assert.Equal(t, "b", roots[1].Name)

	children, err := s.folders.ListChildren(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "/b/child", children[0].Path)

	_, err = s.folders.ListChildren(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPatchFolder(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a := s.mkFolder(t, "A", nil)
	b := s.mkFolder(t, "B", a)

	name := "C"
	got, err := s.folders.PatchFolder(ctx, b.ID, &wsSvc.PatchFolderRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "/A/C", got.Path)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, a.ID, *got.ParentID)

	got, err = s.folders.PatchFolder(ctx, b.ID, &wsSvc.PatchFolderRequest{MoveParent: true})
	require.NoError(t, err)
	assert.Equal(t, "/C", got.Path)
	assert.Nil(t, got.ParentID)
}
