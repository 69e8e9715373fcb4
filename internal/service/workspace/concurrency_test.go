package workspace_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadline/internal/domain"
	models "threadline/internal/domain/models/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
)

func TestConcurrentCrossKindCreatesClaimPathOnce(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	const writers = 16
	var (
		wg   sync.WaitGroup
		errs = make([]error, writers)
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, errs[i] = s.folders.CreateFolder(ctx, &wsSvc.CreateFolderRequest{Name: "X"})
				return
			}
			_, errs[i] = s.conversations.CreateConversation(ctx, &wsSvc.CreateConversationRequest{Title: "X"})
		}(i)
	}
	wg.Wait()

	successes := 0
	for i, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict, "writer %d", i)
	}
	assert.Equal(t, 1, successes)

	folders, err := s.folders.ListRootFolders(ctx)
	require.NoError(t, err)
	convs, err := s.conversations.ListWithoutFolder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, len(folders)+len(convs))
}

func TestConcurrentRenameAndInsertKeepMessagePaths(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	folder := s.mkFolder(t, "A", nil)
	conv := s.mkConversation(t, "chat", folder)

	const (
		inserters = 6
		perWriter = 3
		renames   = 6
	)
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		failures  []error
		recordErr = func(err error) {
			mu.Lock()
			failures = append(failures, err)
			mu.Unlock()
		}
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < renames; i++ {
			name := fmt.Sprintf("A%d", i)
			if _, err := s.folders.RenameOrMoveFolder(ctx, folder.ID, &wsSvc.RenameOrMoveFolderRequest{Name: name}); err != nil {
				recordErr(err)
			}
		}
	}()

	for w := 0; w < inserters; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := s.messages.InsertMessage(ctx, &wsSvc.InsertMessageRequest{
					ConversationID: conv.ID,
					Role:           models.RoleUser,
					Content:        models.TextContent(fmt.Sprintf("%d-%d", w, i)),
				})
				if err != nil {
					recordErr(err)
				}
			}
		}(w)
	}
	wg.Wait()
	require.Empty(t, failures)

	want := fmt.Sprintf("/A%d/chat", renames-1)
	assert.Equal(t, want, s.conversationPath(t, conv.ID))

	msgs, err := s.messages.ListByConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, inserters*perWriter)
	for _, msg := range msgs {
		assert.Equal(t, want, msg.ConversationPath, "message %s", msg.ID)
	}
}

func TestConcurrentPatchesOfDifferentFieldsBothSurvive(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	conv := s.mkConversation(t, "chat", nil)

	const rounds = 10
	var (
		wg               sync.WaitGroup
		iconErr, infoErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds && iconErr == nil; i++ {
			icon := fmt.Sprintf("icon-%d", i)
			_, iconErr = s.conversations.PatchConversation(ctx, conv.ID, &wsSvc.PatchConversationRequest{Icon: &icon})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds && infoErr == nil; i++ {
			info := fmt.Sprintf("info-%d", i)
			_, infoErr = s.conversations.PatchConversation(ctx, conv.ID, &wsSvc.PatchConversationRequest{Info: &info, SetInfo: true})
		}
	}()
	wg.Wait()
	require.NoError(t, iconErr)
	require.NoError(t, infoErr)

	got, err := s.conversations.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("icon-%d", rounds-1), got.Icon)
	require.NotNil(t, got.Info)
	assert.Equal(t, fmt.Sprintf("info-%d", rounds-1), *got.Info)
}
