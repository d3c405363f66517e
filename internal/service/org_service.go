package service

import (
	"context"
	"strings"

	"scrimhub/internal/models"
	"scrimhub/internal/repository"
	"scrimhub/internal/validation"
)

type OrgService struct {
	orgRepo repository.OrganizationRepository
}

type CreateOrgInput struct {
	OwnerID     uint
	Name        string
	Tag         string
	Region      string
	Description string
	Logo        string
}

type UpdateOrgInput struct {
	UserID      uint
	OrgID       uint
	Name        string
	Tag         string
	Region      string
	Description string
	Logo        string
}

type ListOrgsInput struct {
	Region string
	Limit  int
	Offset int
}

func NewOrgService(orgRepo repository.OrganizationRepository) *OrgService {
	return &OrgService{orgRepo: orgRepo}
}

func (s *OrgService) CreateOrg(ctx context.Context, in CreateOrgInput) (*models.Organization, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if in.Tag != "" {
		if err := validation.ValidateOrgTag(in.Tag); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	org := &models.Organization{
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Tag:         in.Tag,
		Region:      in.Region,
		Description: in.Description,
		Logo:        in.Logo,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return s.orgRepo.GetByID(ctx, org.ID)
}

func (s *OrgService) GetOrg(ctx context.Context, id uint) (*models.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *OrgService) ListOrgs(ctx context.Context, in ListOrgsInput) ([]*models.Organization, error) {
	limit, offset := clampPagination(in.Limit, in.Offset)
	return s.orgRepo.List(ctx, in.Region, offset, limit)
}

func (s *OrgService) GetUserOrgs(ctx context.Context, ownerID uint) ([]*models.Organization, error) {
	return s.orgRepo.GetByOwner(ctx, ownerID)
}

func (s *OrgService) UpdateOrg(ctx context.Context, in UpdateOrgInput) (*models.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, in.OrgID)
	if err != nil {
		return nil, err
	}
	if org.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("Only the owner can update the organization")
	}

	if in.Name != "" {
		org.Name = in.Name
	}
	if in.Tag != "" {
		if err := validation.ValidateOrgTag(in.Tag); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		org.Tag = in.Tag
	}
	if in.Region != "" {
		org.Region = in.Region
	}
	if in.Description != "" {
		org.Description = in.Description
	}
	if in.Logo != "" {
		org.Logo = in.Logo
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return s.orgRepo.GetByID(ctx, org.ID)
}

func (s *OrgService) DeleteOrg(ctx context.Context, userID, orgID uint) error {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org.OwnerID != userID {
		return models.NewForbiddenError("Only the owner can delete the organization")
	}
	return s.orgRepo.Delete(ctx, orgID)
}
