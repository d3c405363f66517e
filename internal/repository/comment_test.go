package repository

import (
	"context"
	"testing"

	"scrimhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByPost_Order(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "comment-author")
	post := &models.Post{Content: "thread", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)

	contents := []string{"first", "second", "third"}
	for _, c := range contents {
		require.NoError(t, repo.Create(ctx, &models.Comment{PostID: post.ID, UserID: author.ID, Content: c}))
	}

	comments, err := repo.ListByPost(ctx, post.ID, 0)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	for i, c := range comments {
		assert.Equal(t, contents[i], c.Content)
	}
}

func TestCommentRepository_LikeToggle(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "cl-author")
	liker := createTestUser(t, db, "cl-liker")
	post := &models.Post{Content: "p", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)
	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "c"}
	require.NoError(t, repo.Create(ctx, comment))

	inserted, err := repo.Like(ctx, liker.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Like(ctx, liker.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := repo.GetByID(ctx, comment.ID, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.True(t, got.Liked)

	removed, err := repo.Unlike(ctx, liker.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err = repo.GetByID(ctx, comment.ID, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)
	assert.False(t, got.Liked)
}

func TestCommentRepository_Delete_CascadesReplies(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "cd-author")
	post := &models.Post{Content: "p", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)
	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "c"}
	require.NoError(t, repo.Create(ctx, comment))

	root := &models.Reply{CommentID: comment.ID, UserID: author.ID, Content: "root"}
	require.NoError(t, db.Create(root).Error)
	child := &models.Reply{CommentID: comment.ID, ParentReplyID: &root.ID, UserID: author.ID, Content: "child"}
	require.NoError(t, db.Create(child).Error)
	require.NoError(t, db.Create(&models.CommentLike{UserID: author.ID, CommentID: comment.ID}).Error)

	require.NoError(t, repo.Delete(ctx, comment.ID))

	var replies, likes int64
	require.NoError(t, db.Model(&models.Reply{}).Where("comment_id = ?", comment.ID).Count(&replies).Error)
	require.NoError(t, db.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&likes).Error)
	assert.Zero(t, replies)
	assert.Zero(t, likes)

	err := repo.Delete(ctx, comment.ID)
	assert.True(t, IsNotFound(err))
}
