package service

import (
	"context"
	"strings"

	"scrimhub/internal/models"
	"scrimhub/internal/repository"
)

type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	notifier *NotificationService
}

type SendMessageInput struct {
	SenderID       uint
	ConversationID uint
	Content        string
}

func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// StartConversation returns the one conversation between the caller and the
// other user, creating it on first contact.
func (s *ChatService) StartConversation(ctx context.Context, userID, otherID uint) (*models.Conversation, error) {
	if userID == otherID {
		return nil, models.NewValidationError("Cannot start a conversation with yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}

	conversation, _, err := s.chatRepo.GetOrCreateConversation(ctx, userID, otherID)
	return conversation, err
}

func (s *ChatService) ListConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	return s.chatRepo.ListConversations(ctx, userID)
}

func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	const maxMessageLen = 5000

	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 5000 characters)")
	}

	conversation, err := s.chatRepo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, err
	}
	ok, err := s.chatRepo.IsParticipant(ctx, in.ConversationID, in.SenderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewForbiddenError("You are not part of this conversation")
	}

	message := &models.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Content:        in.Content,
	}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		for _, p := range conversation.Participants {
			if p.ID == in.SenderID {
				continue
			}
			s.notifier.Notify(ctx, NotifyInput{
				Type:           models.NotificationMessage,
				RecipientID:    p.ID,
				SenderID:       in.SenderID,
				ConversationID: &conversation.ID,
			})
		}
	}
	return message, nil
}

// ListMessages pages backwards through a conversation the caller belongs to.
func (s *ChatService) ListMessages(ctx context.Context, userID, conversationID, before uint, limit int) ([]*models.Message, error) {
	ok, err := s.chatRepo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewForbiddenError("You are not part of this conversation")
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.chatRepo.ListMessages(ctx, conversationID, before, limit)
}

// MarkRead marks the other side's messages read and clears the conversation's
// message notifications for the reader.
func (s *ChatService) MarkRead(ctx context.Context, userID, conversationID uint) error {
	ok, err := s.chatRepo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewForbiddenError("You are not part of this conversation")
	}
	if err := s.chatRepo.MarkRead(ctx, conversationID, userID); err != nil {
		return err
	}
	if s.notifier != nil {
		return s.notifier.ClearConversation(ctx, userID, conversationID)
	}
	return nil
}
