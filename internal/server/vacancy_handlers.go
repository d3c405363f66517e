// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"scrimhub/internal/models"
	"scrimhub/internal/repository"
	"scrimhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateVacancy handles POST /api/orgs/:id/vacancies (org owner only)
func (s *Server) CreateVacancy(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	orgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title        string `json:"title"`
		Game         string `json:"game"`
		Role         string `json:"role"`
		Description  string `json:"description"`
		Requirements string `json:"requirements"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	vacancy, err := s.vacancyService.CreateVacancy(ctx, service.CreateVacancyInput{
		UserID:       userID,
		OrgID:        orgID,
		Title:        req.Title,
		Game:         req.Game,
		Role:         req.Role,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(vacancy)
}

// GetVacancies handles GET /api/vacancies?game=...&role=...&status=...
func (s *Server) GetVacancies(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	vacancies, err := s.vacancyService.ListVacancies(ctx, repository.VacancyFilter{
		Game:   c.Query("game"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(vacancies)
}

// GetOrgVacancies handles GET /api/orgs/:id/vacancies
func (s *Server) GetOrgVacancies(c *fiber.Ctx) error {
	ctx := c.Context()
	orgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)

	vacancies, err := s.vacancyService.ListVacancies(ctx, repository.VacancyFilter{
		OrgID:  orgID,
		Status: c.Query("status"),
	}, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(vacancies)
}

// GetVacancy handles GET /api/vacancies/:id
func (s *Server) GetVacancy(c *fiber.Ctx) error {
	ctx := c.Context()
	vacancyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	vacancy, err := s.vacancyService.GetVacancy(ctx, vacancyID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(vacancy)
}

// UpdateVacancy handles PUT /api/vacancies/:id (org owner only)
func (s *Server) UpdateVacancy(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	vacancyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Requirements string `json:"requirements"`
		Status       string `json:"status"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	vacancy, err := s.vacancyService.UpdateVacancy(ctx, service.UpdateVacancyInput{
		UserID:       userID,
		VacancyID:    vacancyID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(vacancy)
}

// DeleteVacancy handles DELETE /api/vacancies/:id (org owner only)
func (s *Server) DeleteVacancy(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	vacancyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.vacancyService.DeleteVacancy(ctx, userID, vacancyID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ApplyToVacancy handles POST /api/vacancies/:id/apply
// At most one application per (vacancy, user); duplicates are rejected.
func (s *Server) ApplyToVacancy(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	vacancyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Message string `json:"message"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	application, err := s.vacancyService.Apply(ctx, service.ApplyInput{
		UserID:    userID,
		VacancyID: vacancyID,
		Message:   req.Message,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

// GetVacancyApplications handles GET /api/vacancies/:id/applications (org owner only)
func (s *Server) GetVacancyApplications(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	vacancyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	applications, err := s.vacancyService.ListApplications(ctx, userID, vacancyID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(applications)
}

// GetMyApplications handles GET /api/users/me/applications
func (s *Server) GetMyApplications(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	applications, err := s.vacancyService.MyApplications(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(applications)
}

// ReviewApplication handles POST /api/applications/:id/review (org owner only)
func (s *Server) ReviewApplication(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	applicationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	application, err := s.vacancyService.ReviewApplication(ctx, service.ReviewApplicationInput{
		UserID:        userID,
		ApplicationID: applicationID,
		Status:        req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(application)
}
