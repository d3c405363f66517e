package models

import (
	"time"

	"gorm.io/gorm"
)

// Vacancy statuses.
const (
	VacancyOpen   = "open"
	VacancyClosed = "closed"
)

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Vacancy is a recruiting post ("vaga") published by an organization.
type Vacancy struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OrgID        uint           `gorm:"not null;index" json:"org_id"`
	Org          Organization   `gorm:"foreignKey:OrgID" json:"org"`
	Title        string         `gorm:"not null" json:"title"`
	Game         string         `gorm:"index" json:"game"`
	Role         string         `json:"role"`
	Description  string         `gorm:"type:text" json:"description"`
	Requirements string         `gorm:"type:text" json:"requirements"`
	Status       string         `gorm:"size:10;default:open;index" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// VacancyApplication is a player's application to a vacancy, at most one per
// (vacancy, user).
type VacancyApplication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VacancyID uint      `gorm:"not null;uniqueIndex:idx_application_vacancy_user" json:"vacancy_id"`
	Vacancy   Vacancy   `gorm:"foreignKey:VacancyID" json:"vacancy"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_application_vacancy_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Message   string    `gorm:"type:text" json:"message"`
	Status    string    `gorm:"size:10;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
