package service

import (
	"context"
	"strings"

	"scrimhub/internal/models"
	"scrimhub/internal/repository"
)

type ReplyService struct {
	replyRepo   repository.ReplyRepository
	commentRepo repository.CommentRepository
	notifier    *NotificationService
}

type AddReplyInput struct {
	UserID        uint
	CommentID     uint
	ParentReplyID *uint
	Content       string
}

type EditReplyInput struct {
	UserID  uint
	ReplyID uint
	Content string
}

type DeleteReplyInput struct {
	UserID  uint
	ReplyID uint
}

func NewReplyService(
	replyRepo repository.ReplyRepository,
	commentRepo repository.CommentRepository,
	notifier *NotificationService,
) *ReplyService {
	return &ReplyService{
		replyRepo:   replyRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
	}
}

// AddReply appends a reply under a comment, optionally nested under another
// reply of the same comment. The notification always goes to the comment's
// author, never to the parent reply's author.
func (s *ReplyService) AddReply(ctx context.Context, in AddReplyInput) (*models.Reply, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Reply too long (max 10000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, 0)
	if err != nil {
		return nil, err
	}

	if in.ParentReplyID != nil {
		parent, err := s.replyRepo.GetByID(ctx, *in.ParentReplyID)
		if err != nil {
			return nil, err
		}
		if parent.CommentID != in.CommentID {
			return nil, models.NewValidationError("Parent reply belongs to a different comment")
		}
	}

	reply := &models.Reply{
		CommentID:     in.CommentID,
		ParentReplyID: in.ParentReplyID,
		UserID:        in.UserID,
		Content:       in.Content,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, NotifyInput{
			Type:        models.NotificationReply,
			RecipientID: comment.UserID,
			SenderID:    in.UserID,
			PostID:      &comment.PostID,
			CommentID:   &comment.ID,
		})
	}

	return s.replyRepo.GetByID(ctx, reply.ID)
}

// GetReplies returns the comment's full reply forest, expanded to
// models.MaxReplyDepth.
func (s *ReplyService) GetReplies(ctx context.Context, commentID uint) ([]*models.Reply, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID, 0); err != nil {
		return nil, err
	}
	replies, err := s.replyRepo.ListByComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return models.BuildReplyTree(replies, models.MaxReplyDepth), nil
}

// GetSubtree serves the on-demand expansion below a single reply.
func (s *ReplyService) GetSubtree(ctx context.Context, replyID uint) (*models.Reply, error) {
	root, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return nil, err
	}
	all, err := s.replyRepo.ListByComment(ctx, root.CommentID)
	if err != nil {
		return nil, err
	}
	// Unlimited depth: the subtree endpoint exists precisely for nodes below
	// the eager expansion cutoff.
	for r := range models.FlattenReplies(models.BuildReplyTree(all, 0)) {
		if r.ID == replyID {
			return r, nil
		}
	}
	return root, nil
}

func (s *ReplyService) EditReply(ctx context.Context, in EditReplyInput) (*models.Reply, error) {
	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID)
	if err != nil {
		return nil, err
	}
	if reply.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own replies")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	reply.Content = in.Content
	if err := s.replyRepo.Update(ctx, reply); err != nil {
		return nil, err
	}
	return s.replyRepo.GetByID(ctx, reply.ID)
}

// DeleteReply removes the reply and everything nested below it. Children are
// never re-parented.
func (s *ReplyService) DeleteReply(ctx context.Context, in DeleteReplyInput) error {
	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID)
	if err != nil {
		return err
	}
	if reply.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own replies")
	}
	return s.replyRepo.DeleteSubtree(ctx, in.ReplyID)
}
