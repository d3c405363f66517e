package models

import (
	"time"

	"gorm.io/gorm"
)

// Organization is an esports org profile. Only the owner may edit it or
// manage its vacancies.
type Organization struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Owner       User           `gorm:"foreignKey:OwnerID" json:"owner"`
	Name        string         `gorm:"not null;unique" json:"name"`
	Tag         string         `gorm:"size:10" json:"tag"`
	Region      string         `json:"region"`
	Description string         `gorm:"type:text" json:"description"`
	Logo        string         `json:"logo"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Vacancies []Vacancy `gorm:"foreignKey:OrgID" json:"vacancies,omitempty"`
}
