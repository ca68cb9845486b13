// Package server contains the HTTP handlers for the blog's routes.
package server

import (
	"blogicum/internal/models"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetLocations handles GET /location
// Lists published locations for the post form.
func (s *Server) GetLocations(c *fiber.Ctx) error {
	locations, err := s.taxonomyService.ListLocations(c.Context())
	if err != nil {
		return respondServiceError(c, err, "/")
	}
	return c.JSON(fiber.Map{"locations": locations})
}

// CreateCategory handles POST /category (admin)
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.taxonomyService.CreateCategory(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

// UpdateCategory handles POST /category/:slug (admin)
// The slug itself is immutable; only title, description, and the published
// flag change.
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var req service.CategoryInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.taxonomyService.UpdateCategory(c.Context(), slug, req)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return c.JSON(fiber.Map{"category": category})
}

// DeleteCategory handles POST /category/:slug/delete (admin)
// Posts in the category survive with the category detached.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	slug := c.Params("slug")

	if err := s.taxonomyService.DeleteCategory(c.Context(), slug); err != nil {
		return respondServiceError(c, err, "/")
	}

	return seeOther(c, "/")
}

// CreateLocation handles POST /location (admin)
func (s *Server) CreateLocation(c *fiber.Ctx) error {
	var req service.LocationInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	location, err := s.taxonomyService.CreateLocation(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"location": location})
}

// DeleteLocation handles POST /location/:id/delete (admin)
// Posts at the location survive with the location detached.
func (s *Server) DeleteLocation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteLocation(c.Context(), id); err != nil {
		return respondServiceError(c, err, "/")
	}

	return seeOther(c, "/")
}
