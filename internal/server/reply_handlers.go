// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"scrimhub/internal/models"
	"scrimhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReply handles POST /api/comments/:id/replies
// Pass parent_reply_id to nest under an existing reply of the same comment.
func (s *Server) CreateReply(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content       string `json:"content"`
		ParentReplyID *uint  `json:"parent_reply_id,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, err := s.replyService.AddReply(ctx, service.AddReplyInput{
		UserID:        userID,
		CommentID:     commentID,
		ParentReplyID: req.ParentReplyID,
		Content:       req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(reply)
}

// GetReplies handles GET /api/comments/:id/replies
// The tree is expanded to the fixed transport depth; deeper levels are
// fetched through GET /api/replies/:id/tree.
func (s *Server) GetReplies(c *fiber.Ctx) error {
	ctx := c.Context()
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	replies, err := s.replyService.GetReplies(ctx, commentID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(replies)
}

// GetReplyTree handles GET /api/replies/:id/tree
// Returns the reply with its full subtree, unbounded depth.
func (s *Server) GetReplyTree(c *fiber.Ctx) error {
	ctx := c.Context()
	replyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reply, err := s.replyService.GetSubtree(ctx, replyID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(reply)
}

// UpdateReply handles PUT /api/replies/:id
func (s *Server) UpdateReply(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	replyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, err := s.replyService.EditReply(ctx, service.EditReplyInput{
		UserID:  userID,
		ReplyID: replyID,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(reply)
}

// DeleteReply handles DELETE /api/replies/:id
// The reply and all of its descendants are removed; children are never
// re-parented.
func (s *Server) DeleteReply(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	replyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.replyService.DeleteReply(ctx, service.DeleteReplyInput{
		UserID:  userID,
		ReplyID: replyID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
