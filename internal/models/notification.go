package models

import "time"

// Notification types derived from actions on the discussion engine, plus the
// messaging module's own type.
const (
	NotificationLike        = "like"
	NotificationCommentLike = "comment_like"
	NotificationComment     = "comment"
	NotificationReply       = "reply"
	NotificationMessage     = "message"
)

// Notification is a derived event, never edited by users. It is created as a
// side effect of a triggering action, skipped entirely for self-actions, and
// only ever transitions unread -> read via the bulk mark-all-read operation.
// The messaging module additionally deletes its own `message` notifications
// when the recipient reads the conversation.
type Notification struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"size:30;not null;index" json:"type"`
	// UserID is the recipient: the owner of the liked/commented/replied-to entity.
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	Sender         User      `gorm:"foreignKey:SenderID" json:"sender"`
	PostID         *uint     `json:"post_id,omitempty"`
	CommentID      *uint     `json:"comment_id,omitempty"`
	ConversationID *uint     `json:"conversation_id,omitempty"`
	Read           bool      `gorm:"default:false" json:"read"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}
