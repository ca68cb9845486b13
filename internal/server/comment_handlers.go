// Package server contains the HTTP handlers for the blog's routes.
package server

import (
	"blogicum/internal/models"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /posts/:id/comment
// On success redirects back to the post detail.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req service.CommentInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.commentService.CreateComment(c.Context(), postID, userID, req); err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}

	return seeOther(c, postDetailPath(postID))
}

// EditCommentForm handles GET /posts/:id/edit_comment/:commentId
// A non-author is bounced to the post detail without an error body.
func (s *Server) EditCommentForm(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	comment, err := s.commentService.GetOwnComment(c.Context(), postID, commentID, userID)
	if err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}

	return c.JSON(fiber.Map{"comment": comment})
}

// UpdateComment handles POST /posts/:id/edit_comment/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req service.CommentInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.commentService.UpdateComment(c.Context(), postID, commentID, userID, req); err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}

	return seeOther(c, postDetailPath(postID))
}

// DeleteCommentForm handles GET /posts/:id/delete_comment/:commentId
// Returns the comment for the confirmation page.
func (s *Server) DeleteCommentForm(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	comment, err := s.commentService.GetOwnComment(c.Context(), postID, commentID, userID)
	if err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}

	return c.JSON(fiber.Map{"comment": comment})
}

// DeleteComment handles POST /posts/:id/delete_comment/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.commentService.DeleteComment(c.Context(), postID, commentID, userID); err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}

	return seeOther(c, postDetailPath(postID))
}
