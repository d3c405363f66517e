package service

import (
	"context"
	"strings"

	"scrimhub/internal/models"
	"scrimhub/internal/repository"
)

type VacancyService struct {
	vacancyRepo repository.VacancyRepository
	orgRepo     repository.OrganizationRepository
}

type CreateVacancyInput struct {
	UserID       uint
	OrgID        uint
	Title        string
	Game         string
	Role         string
	Description  string
	Requirements string
}

type UpdateVacancyInput struct {
	UserID       uint
	VacancyID    uint
	Title        string
	Description  string
	Requirements string
	Status       string
}

type ApplyInput struct {
	UserID    uint
	VacancyID uint
	Message   string
}

type ReviewApplicationInput struct {
	UserID        uint
	ApplicationID uint
	Status        string
}

func NewVacancyService(vacancyRepo repository.VacancyRepository, orgRepo repository.OrganizationRepository) *VacancyService {
	return &VacancyService{vacancyRepo: vacancyRepo, orgRepo: orgRepo}
}

func (s *VacancyService) CreateVacancy(ctx context.Context, in CreateVacancyInput) (*models.Vacancy, error) {
	org, err := s.orgRepo.GetByID(ctx, in.OrgID)
	if err != nil {
		return nil, err
	}
	if org.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("Only the organization owner can post vacancies")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}

	vacancy := &models.Vacancy{
		OrgID:        in.OrgID,
		Title:        in.Title,
		Game:         in.Game,
		Role:         in.Role,
		Description:  in.Description,
		Requirements: in.Requirements,
		Status:       models.VacancyOpen,
	}
	if err := s.vacancyRepo.Create(ctx, vacancy); err != nil {
		return nil, err
	}
	return s.vacancyRepo.GetByID(ctx, vacancy.ID)
}

func (s *VacancyService) GetVacancy(ctx context.Context, id uint) (*models.Vacancy, error) {
	return s.vacancyRepo.GetByID(ctx, id)
}

func (s *VacancyService) ListVacancies(ctx context.Context, filter repository.VacancyFilter, limit, offset int) ([]*models.Vacancy, error) {
	limit, offset = clampPagination(limit, offset)
	return s.vacancyRepo.List(ctx, filter, offset, limit)
}

func (s *VacancyService) UpdateVacancy(ctx context.Context, in UpdateVacancyInput) (*models.Vacancy, error) {
	vacancy, err := s.vacancyRepo.GetByID(ctx, in.VacancyID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, vacancy.OrgID, in.UserID); err != nil {
		return nil, err
	}

	if in.Title != "" {
		vacancy.Title = in.Title
	}
	if in.Description != "" {
		vacancy.Description = in.Description
	}
	if in.Requirements != "" {
		vacancy.Requirements = in.Requirements
	}
	if in.Status != "" {
		if in.Status != models.VacancyOpen && in.Status != models.VacancyClosed {
			return nil, models.NewValidationError("Status must be open or closed")
		}
		vacancy.Status = in.Status
	}

	if err := s.vacancyRepo.Update(ctx, vacancy); err != nil {
		return nil, err
	}
	return s.vacancyRepo.GetByID(ctx, vacancy.ID)
}

func (s *VacancyService) DeleteVacancy(ctx context.Context, userID, vacancyID uint) error {
	vacancy, err := s.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, vacancy.OrgID, userID); err != nil {
		return err
	}
	return s.vacancyRepo.Delete(ctx, vacancyID)
}

// Apply submits the caller's application. The unique index keeps it to one
// application per vacancy per user; a repeat submit is a validation error.
func (s *VacancyService) Apply(ctx context.Context, in ApplyInput) (*models.VacancyApplication, error) {
	vacancy, err := s.vacancyRepo.GetByID(ctx, in.VacancyID)
	if err != nil {
		return nil, err
	}
	if vacancy.Status != models.VacancyOpen {
		return nil, models.NewValidationError("Vacancy is closed")
	}

	application := &models.VacancyApplication{
		VacancyID: in.VacancyID,
		UserID:    in.UserID,
		Message:   in.Message,
		Status:    models.ApplicationPending,
	}
	inserted, err := s.vacancyRepo.Apply(ctx, application)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, models.NewValidationError("You have already applied to this vacancy")
	}
	return s.vacancyRepo.GetApplication(ctx, application.ID)
}

func (s *VacancyService) ListApplications(ctx context.Context, userID, vacancyID uint) ([]*models.VacancyApplication, error) {
	vacancy, err := s.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, vacancy.OrgID, userID); err != nil {
		return nil, err
	}
	return s.vacancyRepo.ListApplications(ctx, vacancyID)
}

// MyApplications lists the caller's own applications, newest first.
func (s *VacancyService) MyApplications(ctx context.Context, userID uint) ([]*models.VacancyApplication, error) {
	return s.vacancyRepo.ListUserApplications(ctx, userID)
}

func (s *VacancyService) ReviewApplication(ctx context.Context, in ReviewApplicationInput) (*models.VacancyApplication, error) {
	if in.Status != models.ApplicationAccepted && in.Status != models.ApplicationRejected {
		return nil, models.NewValidationError("Status must be accepted or rejected")
	}

	application, err := s.vacancyRepo.GetApplication(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	vacancy, err := s.vacancyRepo.GetByID(ctx, application.VacancyID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, vacancy.OrgID, in.UserID); err != nil {
		return nil, err
	}

	if err := s.vacancyRepo.UpdateApplicationStatus(ctx, in.ApplicationID, in.Status); err != nil {
		return nil, err
	}
	return s.vacancyRepo.GetApplication(ctx, in.ApplicationID)
}

func (s *VacancyService) requireOwner(ctx context.Context, orgID, userID uint) error {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org.OwnerID != userID {
		return models.NewForbiddenError("Only the organization owner can manage vacancies")
	}
	return nil
}
