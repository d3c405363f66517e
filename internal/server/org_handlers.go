// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"scrimhub/internal/models"
	"scrimhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateOrg handles POST /api/orgs
func (s *Server) CreateOrg(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string `json:"name"`
		Tag         string `json:"tag"`
		Region      string `json:"region"`
		Description string `json:"description"`
		Logo        string `json:"logo"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	org, err := s.orgService.CreateOrg(ctx, service.CreateOrgInput{
		OwnerID:     userID,
		Name:        req.Name,
		Tag:         req.Tag,
		Region:      req.Region,
		Description: req.Description,
		Logo:        req.Logo,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(org)
}

// GetOrgs handles GET /api/orgs?region=...
func (s *Server) GetOrgs(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	orgs, err := s.orgService.ListOrgs(ctx, service.ListOrgsInput{
		Region: c.Query("region"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(orgs)
}

// GetOrg handles GET /api/orgs/:id
func (s *Server) GetOrg(c *fiber.Ctx) error {
	ctx := c.Context()
	orgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	org, err := s.orgService.GetOrg(ctx, orgID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(org)
}

// GetUserOrgs handles GET /api/users/:id/orgs
func (s *Server) GetUserOrgs(c *fiber.Ctx) error {
	ctx := c.Context()
	ownerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	orgs, err := s.orgService.GetUserOrgs(ctx, ownerID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(orgs)
}

// UpdateOrg handles PUT /api/orgs/:id (owner only)
func (s *Server) UpdateOrg(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	orgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Tag         string `json:"tag"`
		Region      string `json:"region"`
		Description string `json:"description"`
		Logo        string `json:"logo"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	org, err := s.orgService.UpdateOrg(ctx, service.UpdateOrgInput{
		UserID:      userID,
		OrgID:       orgID,
		Name:        req.Name,
		Tag:         req.Tag,
		Region:      req.Region,
		Description: req.Description,
		Logo:        req.Logo,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(org)
}

// DeleteOrg handles DELETE /api/orgs/:id (owner only)
// Cascades to the org's vacancies and their applications.
func (s *Server) DeleteOrg(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	orgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.orgService.DeleteOrg(ctx, userID, orgID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
