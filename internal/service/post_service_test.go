package service

import (
	"context"
	"strings"
	"testing"

	"scrimhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	notifier, _ := newRecordingNotifier()
	svc := NewPostService(noopPostRepo(), notifier, nil)
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1})
		assertValidationError(t, err)
	})

	t.Run("whitespace only content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Content: "   \n\t "})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Content: strings.Repeat("x", 50001)})
		assertValidationError(t, err)
	})
}

func TestPostService_UpdatePost_OwnerOnly(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 10, Content: "original"}, nil
	}
	svc := NewPostService(postRepo, nil, nil)

	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 99, PostID: 1, Content: "hijack"})
	assertForbiddenError(t, err)
}

func TestPostService_DeletePost_AdminOverride(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 10}, nil
	}

	t.Run("non-owner without isAdmin is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(postRepo, nil, nil)
		err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 99, PostID: 1})
		assertForbiddenError(t, err)
	})

	t.Run("admin can delete another user's post", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(postRepo, nil, func(_ context.Context, _ uint) (bool, error) {
			return true, nil
		})
		err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 99, PostID: 1})
		assert.NoError(t, err)
	})
}

func TestPostService_ToggleLike_Notifications(t *testing.T) {
	t.Parallel()

	newSvc := func(authorID uint) (*PostService, *postRepoStub, *notifRepoRecorder) {
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: authorID}, nil
		}
		notifier, rec := newRecordingNotifier()
		return NewPostService(postRepo, notifier, nil), postRepo, rec
	}

	t.Run("fresh like notifies the author", func(t *testing.T) {
		t.Parallel()
		svc, _, rec := newSvc(10)

		_, liked, err := svc.ToggleLike(context.Background(), 2, 1)
		require.NoError(t, err)
		assert.True(t, liked)
		require.Len(t, rec.created, 1)
		assert.Equal(t, models.NotificationLike, rec.created[0].Type)
		assert.Equal(t, uint(10), rec.created[0].UserID)
		assert.Equal(t, uint(2), rec.created[0].SenderID)
	})

	t.Run("self-like produces no notification", func(t *testing.T) {
		t.Parallel()
		svc, _, rec := newSvc(2)

		_, liked, err := svc.ToggleLike(context.Background(), 2, 1)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.Empty(t, rec.created)
	})

	t.Run("lost insert race is liked without notification", func(t *testing.T) {
		t.Parallel()
		svc, postRepo, rec := newSvc(10)
		postRepo.likeFn = func(_ context.Context, _, _ uint) (bool, error) {
			// Row already written by a concurrent request.
			return false, nil
		}

		_, liked, err := svc.ToggleLike(context.Background(), 2, 1)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.Empty(t, rec.created)
	})

	t.Run("unlike never notifies", func(t *testing.T) {
		t.Parallel()
		svc, postRepo, rec := newSvc(10)
		postRepo.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }

		_, liked, err := svc.ToggleLike(context.Background(), 2, 1)
		require.NoError(t, err)
		assert.False(t, liked)
		assert.Empty(t, rec.created)
	})
}
