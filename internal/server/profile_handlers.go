// Package server contains the HTTP handlers for the blog's routes.
package server

import (
	"blogicum/internal/models"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /profile/:username
// The owner sees all of their posts, including unpublished and future-dated
// ones; everyone else sees only publicly-visible posts.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	p := parsePagination(c, s.config.PageSize)

	user, err := s.userService.GetByUsername(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	viewerID, _ := s.optionalUserID(c)

	page, err := s.postService.ListByAuthor(c.Context(), user.ID, viewerID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return c.JSON(fiber.Map{
		"profile": user,
		"posts":   page.Posts,
		"total":   page.Total,
		"page":    p.Page,
		"limit":   p.Limit,
	})
}

// EditProfileForm handles GET /profile/edit
// Returns the requester's own account for the edit form.
func (s *Server) EditProfileForm(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return c.JSON(fiber.Map{"profile": user})
}

// UpdateProfile handles POST /profile/edit
// On success redirects to the updated profile page.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, req)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return seeOther(c, profilePath(user.Username))
}

// DeleteAccount handles POST /profile/delete
// Removes the requester's account and everything they authored, then
// redirects to the index.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.userService.DeleteAccount(c.Context(), userID); err != nil {
		return respondServiceError(c, err, "/")
	}

	return seeOther(c, "/")
}
