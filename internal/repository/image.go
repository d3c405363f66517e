package repository

import (
	"context"
	"errors"

	"scrimhub/internal/models"

	"gorm.io/gorm"
)

// ImageRepository defines interface for image metadata operations
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByHash(ctx context.Context, hash string) (*models.Image, error)
	GetVariant(ctx context.Context, hash string, sizePx int, format string) (*models.ImageVariant, error)
	AddVariant(ctx context.Context, variant *models.ImageVariant) error
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new ImageRepository
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) GetByHash(ctx context.Context, hash string) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("hash = ?", hash).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image", hash)
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) GetVariant(ctx context.Context, hash string, sizePx int, format string) (*models.ImageVariant, error) {
	var variant models.ImageVariant
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN images ON images.id = image_variants.image_id").
		Where("images.hash = ? AND image_variants.size_px = ? AND image_variants.format = ?", hash, sizePx, format).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image variant", hash)
		}
		return nil, err
	}
	return &variant, nil
}

func (r *imageRepository) AddVariant(ctx context.Context, variant *models.ImageVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}
