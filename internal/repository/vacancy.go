package repository

import (
	"context"
	"errors"

	"scrimhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VacancyFilter narrows vacancy listings.
type VacancyFilter struct {
	Game   string
	Role   string
	Status string
	OrgID  uint
}

// VacancyRepository defines interface for vacancy and application operations
type VacancyRepository interface {
	Create(ctx context.Context, vacancy *models.Vacancy) error
	GetByID(ctx context.Context, id uint) (*models.Vacancy, error)
	List(ctx context.Context, filter VacancyFilter, offset, limit int) ([]*models.Vacancy, error)
	Update(ctx context.Context, vacancy *models.Vacancy) error
	Delete(ctx context.Context, id uint) error

	Apply(ctx context.Context, application *models.VacancyApplication) (bool, error)
	GetApplication(ctx context.Context, id uint) (*models.VacancyApplication, error)
	ListApplications(ctx context.Context, vacancyID uint) ([]*models.VacancyApplication, error)
	ListUserApplications(ctx context.Context, userID uint) ([]*models.VacancyApplication, error)
	UpdateApplicationStatus(ctx context.Context, id uint, status string) error
}

type vacancyRepository struct {
	db *gorm.DB
}

// NewVacancyRepository creates a new VacancyRepository
func NewVacancyRepository(db *gorm.DB) VacancyRepository {
	return &vacancyRepository{db: db}
}

func (r *vacancyRepository) Create(ctx context.Context, vacancy *models.Vacancy) error {
	return r.db.WithContext(ctx).Create(vacancy).Error
}

func (r *vacancyRepository) GetByID(ctx context.Context, id uint) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	err := r.db.WithContext(ctx).
		Preload("Org").
		First(&vacancy, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Vacancy", id)
		}
		return nil, err
	}
	return &vacancy, nil
}

func (r *vacancyRepository) List(ctx context.Context, filter VacancyFilter, offset, limit int) ([]*models.Vacancy, error) {
	q := r.db.WithContext(ctx).Preload("Org").Order("created_at desc")
	if filter.Game != "" {
		q = q.Where("game = ?", filter.Game)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OrgID != 0 {
		q = q.Where("org_id = ?", filter.OrgID)
	}
	var vacancies []*models.Vacancy
	err := q.Offset(offset).Limit(limit).Find(&vacancies).Error
	return vacancies, err
}

func (r *vacancyRepository) Update(ctx context.Context, vacancy *models.Vacancy) error {
	return r.db.WithContext(ctx).Save(vacancy).Error
}

func (r *vacancyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vacancy_id = ?", id).
			Delete(&models.VacancyApplication{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Vacancy{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Vacancy", id)
		}
		return nil
	})
}

// Apply inserts the application unless the user already applied. Returns
// whether a new row was written, same shape as the like toggles.
func (r *vacancyRepository) Apply(ctx context.Context, application *models.VacancyApplication) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(application)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *vacancyRepository) GetApplication(ctx context.Context, id uint) (*models.VacancyApplication, error) {
	var application models.VacancyApplication
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Vacancy").
		First(&application, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Application", id)
		}
		return nil, err
	}
	return &application, nil
}

func (r *vacancyRepository) ListApplications(ctx context.Context, vacancyID uint) ([]*models.VacancyApplication, error) {
	var applications []*models.VacancyApplication
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("vacancy_id = ?", vacancyID).
		Order("created_at asc").
		Find(&applications).Error
	return applications, err
}

func (r *vacancyRepository) ListUserApplications(ctx context.Context, userID uint) ([]*models.VacancyApplication, error) {
	var applications []*models.VacancyApplication
	err := r.db.WithContext(ctx).
		Preload("Vacancy").
		Preload("Vacancy.Org").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&applications).Error
	return applications, err
}

func (r *vacancyRepository) UpdateApplicationStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.VacancyApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Application", id)
	}
	return nil
}
