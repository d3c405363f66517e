package service

import (
	"context"
	"strings"

	"scrimhub/internal/models"
	"scrimhub/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
	postRepo    repository.PostRepository
	notifier    *NotificationService
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	replyRepo repository.ReplyRepository,
	postRepo repository.PostRepository,
	notifier *NotificationService,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		replyRepo:   replyRepo,
		postRepo:    postRepo,
		notifier:    notifier,
		isAdmin:     isAdmin,
	}
}

const maxCommentLen = 10000

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, NotifyInput{
			Type:        models.NotificationComment,
			RecipientID: post.UserID,
			SenderID:    in.UserID,
			PostID:      &post.ID,
			CommentID:   &comment.ID,
		})
	}

	return s.commentRepo.GetByID(ctx, comment.ID, in.UserID)
}

// ListComments returns the post's comments oldest first, each with its reply
// tree expanded to models.MaxReplyDepth. All replies for the page are loaded
// in one query and assembled in memory.
func (s *CommentService) ListComments(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return comments, nil
	}

	commentIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
	}
	replies, err := s.replyRepo.ListByComments(ctx, commentIDs)
	if err != nil {
		return nil, err
	}

	byComment := make(map[uint][]*models.Reply, len(comments))
	for _, r := range replies {
		byComment[r.CommentID] = append(byComment[r.CommentID], r)
	}
	for _, c := range comments {
		c.Replies = models.BuildReplyTree(byComment[c.ID], models.MaxReplyDepth)
	}
	return comments, nil
}

func (s *CommentService) GetComment(ctx context.Context, commentID, currentUserID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, currentUserID)
	if err != nil {
		return nil, err
	}
	replies, err := s.replyRepo.ListByComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	comment.Replies = models.BuildReplyTree(replies, models.MaxReplyDepth)
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, in.UserID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID, in.UserID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, 0)
	if err != nil {
		return err
	}
	if comment.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}

// ToggleLike mirrors PostService.ToggleLike for comments.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (*models.Comment, bool, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return nil, false, err
	}

	liked, inserted, err := toggleLike(ctx, s.commentRepo, userID, commentID)
	if err != nil {
		return nil, false, err
	}

	if inserted && s.notifier != nil {
		s.notifier.Notify(ctx, NotifyInput{
			Type:        models.NotificationCommentLike,
			RecipientID: comment.UserID,
			SenderID:    userID,
			PostID:      &comment.PostID,
			CommentID:   &comment.ID,
		})
	}

	comment, err = s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return nil, false, err
	}
	return comment, liked, nil
}
