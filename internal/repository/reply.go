package repository

import (
	"context"
	"errors"

	"scrimhub/internal/models"

	"gorm.io/gorm"
)

// ReplyRepository defines interface for reply operations
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	GetByID(ctx context.Context, id uint) (*models.Reply, error)
	ListByComment(ctx context.Context, commentID uint) ([]*models.Reply, error)
	ListByComments(ctx context.Context, commentIDs []uint) ([]*models.Reply, error)
	Update(ctx context.Context, reply *models.Reply) error
	DeleteSubtree(ctx context.Context, id uint) error
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *replyRepository) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.WithContext(ctx).Preload("User").First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Reply", id)
		}
		return nil, err
	}
	return &reply, nil
}

// ListByComment returns every reply under the comment as a flat slice in
// insertion order. Tree assembly happens in the model layer so a single
// query covers arbitrary nesting.
func (r *replyRepository) ListByComment(ctx context.Context, commentID uint) ([]*models.Reply, error) {
	var replies []*models.Reply
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("comment_id = ?", commentID).
		Order("created_at asc, id asc").
		Find(&replies).Error
	return replies, err
}

func (r *replyRepository) ListByComments(ctx context.Context, commentIDs []uint) ([]*models.Reply, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var replies []*models.Reply
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("comment_id IN ?", commentIDs).
		Order("created_at asc, id asc").
		Find(&replies).Error
	return replies, err
}

func (r *replyRepository) Update(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Save(reply).Error
}

// DeleteSubtree soft-deletes the reply and all of its descendants. The
// recursive CTE runs on both postgres and the sqlite test databases.
func (r *replyRepository) DeleteSubtree(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		err := tx.Raw(`
			WITH RECURSIVE subtree AS (
				SELECT id FROM replies WHERE id = ? AND deleted_at IS NULL
				UNION ALL
				SELECT r.id FROM replies r
				INNER JOIN subtree s ON r.parent_reply_id = s.id
				WHERE r.deleted_at IS NULL
			)
			SELECT id FROM subtree
		`, id).Scan(&ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return models.NewNotFoundError("Reply", id)
		}
		return tx.Delete(&models.Reply{}, ids).Error
	})
}
