package models

import "time"

// Image is an uploaded image stored on disk, addressed by content hash. The
// discussion engine only ever stores the URL strings built from it.
type Image struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Hash             string         `gorm:"size:64;uniqueIndex;not null" json:"hash"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	OriginalFilename string         `json:"original_filename"`
	SizeBytes        int64          `json:"size_bytes"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	Variants         []ImageVariant `gorm:"foreignKey:ImageID" json:"variants,omitempty"`
	UploadedAt       time.Time      `json:"uploaded_at"`
}

// ImageVariant is one resized rendition of an Image, served at
// /media/i/:hash/:size.:format.
type ImageVariant struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	ImageID uint   `gorm:"not null;uniqueIndex:idx_variant_image_size_format" json:"image_id"`
	SizePx  int    `gorm:"not null;uniqueIndex:idx_variant_image_size_format" json:"size_px"`
	Format  string `gorm:"size:8;not null;uniqueIndex:idx_variant_image_size_format" json:"format"`
	Path    string `gorm:"not null" json:"-"`
}
