// Package service holds the business rules sitting between the HTTP
// handlers and the repositories.
package service

import (
	"context"

	"scrimhub/internal/middleware"
	"scrimhub/internal/models"
	"scrimhub/internal/repository"
)

// EventPublisher pushes a realtime event towards a single user. Publishing is
// best-effort: a failed publish never fails the operation that produced it.
type EventPublisher interface {
	PublishUser(ctx context.Context, userID uint, event any) error
}

type NotificationService struct {
	notifRepo repository.NotificationRepository
	publisher EventPublisher
}

type NotifyInput struct {
	Type           string
	RecipientID    uint
	SenderID       uint
	PostID         *uint
	CommentID      *uint
	ConversationID *uint
}

func NewNotificationService(notifRepo repository.NotificationRepository, publisher EventPublisher) *NotificationService {
	return &NotificationService{notifRepo: notifRepo, publisher: publisher}
}

// Notify records a notification for the recipient. Self-actions are
// suppressed here so no caller has to remember the rule. The whole dispatch
// is best-effort: the triggering mutation has already committed, so a failed
// persist or publish is logged and never surfaces to the caller.
func (s *NotificationService) Notify(ctx context.Context, in NotifyInput) {
	if in.RecipientID == in.SenderID {
		return
	}

	notification := &models.Notification{
		Type:           in.Type,
		UserID:         in.RecipientID,
		SenderID:       in.SenderID,
		PostID:         in.PostID,
		CommentID:      in.CommentID,
		ConversationID: in.ConversationID,
	}
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		middleware.Logger.WarnContext(ctx, "notification persist failed",
			"user_id", in.RecipientID, "type", in.Type, "error", err)
		return
	}

	middleware.NotificationsDispatched.WithLabelValues(in.Type).Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishUser(ctx, in.RecipientID, notification); err != nil {
			middleware.Logger.WarnContext(ctx, "notification publish failed",
				"user_id", in.RecipientID, "type", in.Type, "error", err)
		}
	}
}

func (s *NotificationService) List(ctx context.Context, userID uint) ([]*models.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

// ClearConversation drops the message notifications for a conversation the
// user has just read.
func (s *NotificationService) ClearConversation(ctx context.Context, userID, conversationID uint) error {
	return s.notifRepo.DeleteForConversation(ctx, userID, conversationID)
}
