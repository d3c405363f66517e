package repository

import (
	"context"
	"errors"

	"scrimhub/internal/cache"
	"scrimhub/internal/models"

	"gorm.io/gorm"
)

// OrganizationRepository defines interface for organization operations
type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id uint) (*models.Organization, error)
	GetByOwner(ctx context.Context, ownerID uint) ([]*models.Organization, error)
	List(ctx context.Context, region string, offset, limit int) ([]*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id uint) error
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *organizationRepository) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	err := cache.Aside(ctx, cache.OrgKey(id), &org, cache.OrgTTL, func() error {
		err := r.db.WithContext(ctx).
			Preload("Owner").
			Preload("Vacancies", "status = ?", models.VacancyOpen).
			First(&org, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Organization", id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetByOwner(ctx context.Context, ownerID uint) ([]*models.Organization, error) {
	var orgs []*models.Organization
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&orgs).Error
	return orgs, err
}

func (r *organizationRepository) List(ctx context.Context, region string, offset, limit int) ([]*models.Organization, error) {
	q := r.db.WithContext(ctx).Preload("Owner").Order("created_at desc")
	if region != "" {
		q = q.Where("region = ?", region)
	}
	var orgs []*models.Organization
	err := q.Offset(offset).Limit(limit).Find(&orgs).Error
	return orgs, err
}

func (r *organizationRepository) Update(ctx context.Context, org *models.Organization) error {
	if err := r.db.WithContext(ctx).Save(org).Error; err != nil {
		return err
	}
	cache.InvalidateOrg(ctx, org.ID)
	return nil
}

func (r *organizationRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vacancyIDs []uint
		if err := tx.Model(&models.Vacancy{}).
			Where("org_id = ?", id).
			Pluck("id", &vacancyIDs).Error; err != nil {
			return err
		}
		if len(vacancyIDs) > 0 {
			if err := tx.Where("vacancy_id IN ?", vacancyIDs).
				Delete(&models.VacancyApplication{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Vacancy{}, vacancyIDs).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Organization{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Organization", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateOrg(ctx, id)
	return nil
}
