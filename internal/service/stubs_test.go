package service

import (
	"context"
	"errors"
	"testing"

	"scrimhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeForbidden, appErr.Code)
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listFn        func(context.Context, int, int, uint) ([]*models.Post, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, uint) error
	isLikedFn     func(context.Context, uint, uint) (bool, error)
	likeFn        func(context.Context, uint, uint) (bool, error)
	unlikeFn      func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error { return s.createFn(ctx, p) }
func (s *postRepoStub) GetByID(ctx context.Context, id, uid uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, uid)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, uid uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, uid)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, uid uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, uid)
}
func (s *postRepoStub) Update(ctx context.Context, p *models.Post) error { return s.updateFn(ctx, p) }
func (s *postRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *postRepoStub) IsLiked(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, targetID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.likeFn(ctx, userID, targetID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, targetID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error { p.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listFn:   func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		isLikedFn: func(_ context.Context, _, _ uint) (bool, error) {
			return false, nil
		},
		likeFn:   func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, uint) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
	isLikedFn    func(context.Context, uint, uint) (bool, error)
	likeFn       func(context.Context, uint, uint) (bool, error)
	unlikeFn     func(context.Context, uint, uint) (bool, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id, uid uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id, uid)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID, uid uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, uid)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *commentRepoStub) IsLiked(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, targetID)
}
func (s *commentRepoStub) Like(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.likeFn(ctx, userID, targetID)
}
func (s *commentRepoStub) Unlike(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, targetID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error { c.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		isLikedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:       func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:     func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// replyRepoStub is a stub for repository.ReplyRepository.
type replyRepoStub struct {
	createFn         func(context.Context, *models.Reply) error
	getByIDFn        func(context.Context, uint) (*models.Reply, error)
	listByCommentFn  func(context.Context, uint) ([]*models.Reply, error)
	listByCommentsFn func(context.Context, []uint) ([]*models.Reply, error)
	updateFn         func(context.Context, *models.Reply) error
	deleteSubtreeFn  func(context.Context, uint) error
}

func (s *replyRepoStub) Create(ctx context.Context, r *models.Reply) error {
	return s.createFn(ctx, r)
}
func (s *replyRepoStub) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	return s.getByIDFn(ctx, id)
}
func (s *replyRepoStub) ListByComment(ctx context.Context, commentID uint) ([]*models.Reply, error) {
	return s.listByCommentFn(ctx, commentID)
}
func (s *replyRepoStub) ListByComments(ctx context.Context, commentIDs []uint) ([]*models.Reply, error) {
	return s.listByCommentsFn(ctx, commentIDs)
}
func (s *replyRepoStub) Update(ctx context.Context, r *models.Reply) error {
	return s.updateFn(ctx, r)
}
func (s *replyRepoStub) DeleteSubtree(ctx context.Context, id uint) error {
	return s.deleteSubtreeFn(ctx, id)
}

func noopReplyRepo() *replyRepoStub {
	return &replyRepoStub{
		createFn: func(_ context.Context, r *models.Reply) error { r.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Reply, error) {
			return &models.Reply{ID: id}, nil
		},
		listByCommentFn:  func(_ context.Context, _ uint) ([]*models.Reply, error) { return nil, nil },
		listByCommentsFn: func(_ context.Context, _ []uint) ([]*models.Reply, error) { return nil, nil },
		updateFn:         func(_ context.Context, _ *models.Reply) error { return nil },
		deleteSubtreeFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// notifRepoRecorder records created notifications in memory so tests can
// assert on derivation rules.
type notifRepoRecorder struct {
	created []*models.Notification
}

func (s *notifRepoRecorder) Create(_ context.Context, n *models.Notification) error {
	n.ID = uint(len(s.created) + 1)
	s.created = append(s.created, n)
	return nil
}

func (s *notifRepoRecorder) ListByUser(_ context.Context, userID uint) ([]*models.Notification, error) {
	var out []*models.Notification
	for i := len(s.created) - 1; i >= 0; i-- {
		if s.created[i].UserID == userID {
			out = append(out, s.created[i])
		}
	}
	return out, nil
}

func (s *notifRepoRecorder) CountUnread(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, c := range s.created {
		if c.UserID == userID && !c.Read {
			n++
		}
	}
	return n, nil
}

func (s *notifRepoRecorder) MarkAllRead(_ context.Context, userID uint) error {
	for _, c := range s.created {
		if c.UserID == userID {
			c.Read = true
		}
	}
	return nil
}

func (s *notifRepoRecorder) DeleteForConversation(_ context.Context, userID, conversationID uint) error {
	kept := s.created[:0]
	for _, c := range s.created {
		if c.UserID == userID && c.Type == models.NotificationMessage &&
			c.ConversationID != nil && *c.ConversationID == conversationID {
			continue
		}
		kept = append(kept, c)
	}
	s.created = kept
	return nil
}

func newRecordingNotifier() (*NotificationService, *notifRepoRecorder) {
	rec := &notifRepoRecorder{}
	return NewNotificationService(rec, nil), rec
}

// errNotFound mirrors what the repositories return for a missing record.
var errNotFound error = models.NewNotFoundError("record", 0)

// failingNotifRepo rejects every write so tests can exercise best-effort
// notification dispatch.
type failingNotifRepo struct {
	notifRepoRecorder
	attempts int
}

func (s *failingNotifRepo) Create(_ context.Context, _ *models.Notification) error {
	s.attempts++
	return errors.New("notification store down")
}
