package repository

import (
	"context"
	"testing"

	"scrimhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepository_GetOrCreateConversation(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "chat-alice")
	bob := createTestUser(t, db, "chat-bob")

	conv, created, err := repo.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, conv.Participants, 2)

	// The pair maps to the same conversation regardless of argument order.
	again, created, err := repo.GetOrCreateConversation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, conv.ID, again.ID)

	ok, err := repo.IsParticipant(ctx, conv.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	stranger := createTestUser(t, db, "chat-stranger")
	ok, err = repo.IsParticipant(ctx, conv.ID, stranger.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChatRepository_Messages(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "msg-alice")
	bob := createTestUser(t, db, "msg-bob")

	conv, _, err := repo.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	for _, content := range []string{"hey", "scrim at 9?", "bring your duo"} {
		require.NoError(t, repo.CreateMessage(ctx, &models.Message{
			ConversationID: conv.ID,
			SenderID:       alice.ID,
			Content:        content,
		}))
	}

	unread, err := repo.CountUnread(ctx, conv.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	// The sender's own messages are never counted as unread for them.
	unread, err = repo.CountUnread(ctx, conv.ID, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	messages, err := repo.ListMessages(ctx, conv.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "bring your duo", messages[0].Content)

	older, err := repo.ListMessages(ctx, conv.ID, messages[1].ID, 10)
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, "hey", older[0].Content)

	require.NoError(t, repo.MarkRead(ctx, conv.ID, bob.ID))
	unread, err = repo.CountUnread(ctx, conv.ID, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
