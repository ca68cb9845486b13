// Package server contains the HTTP handlers for the blog's routes.
package server

import (
	"blogicum/internal/models"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /
// The front page lists publicly-visible posts only; even an author's own
// hidden posts stay off it.
func (s *Server) Index(c *fiber.Ctx) error {
	p := parsePagination(c, s.config.PageSize)

	page, err := s.postService.ListIndex(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return c.JSON(fiber.Map{
		"posts": page.Posts,
		"total": page.Total,
		"page":  p.Page,
		"limit": p.Limit,
	})
}

// GetPost handles GET /posts/:id
// The detail page includes the post's comments oldest first. A post hidden
// from the viewer answers 404, exactly as an absent one would.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(c.Context(), postID, viewerID)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	comments, err := s.commentService.ListComments(c.Context(), postID, viewerID)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// CategoryPosts handles GET /category/:slug
func (s *Server) CategoryPosts(c *fiber.Ctx) error {
	slug := c.Params("slug")
	p := parsePagination(c, s.config.PageSize)

	category, page, err := s.postService.ListByCategory(c.Context(), slug, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return c.JSON(fiber.Map{
		"category": category,
		"posts":    page.Posts,
		"total":    page.Total,
		"page":     p.Page,
		"limit":    p.Limit,
	})
}

// CreatePostForm handles GET /posts/create
// Returns the vocabularies the post form offers: published categories and
// locations.
func (s *Server) CreatePostForm(c *fiber.Ctx) error {
	categories, err := s.taxonomyService.ListCategories(c.Context())
	if err != nil {
		return respondServiceError(c, err, "/")
	}
	locations, err := s.taxonomyService.ListLocations(c.Context())
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return c.JSON(fiber.Map{
		"categories": categories,
		"locations":  locations,
	})
}

// CreatePost handles POST /posts/create
// On success redirects to the author's profile, where the new post is
// visible in any state.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.PostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.postService.CreatePost(c.Context(), userID, req); err != nil {
		return respondServiceError(c, err, "/")
	}

	user, err := s.userService.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "/")
	}
	return seeOther(c, profilePath(user.Username))
}

// EditPostForm handles GET /posts/:id/edit
// A non-author does not get an error page; they are bounced to the post
// detail as if the edit route did not exist for them.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	post, err := s.postService.GetOwnPost(c.Context(), postID, userID)
	if err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}

	categories, err := s.taxonomyService.ListCategories(c.Context())
	if err != nil {
		return respondServiceError(c, err, "/")
	}
	locations, err := s.taxonomyService.ListLocations(c.Context())
	if err != nil {
		return respondServiceError(c, err, "/")
	}

	return c.JSON(fiber.Map{
		"post":       post,
		"categories": categories,
		"locations":  locations,
	})
}

// UpdatePost handles POST /posts/:id/edit
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req service.PostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.postService.UpdatePost(c.Context(), postID, userID, req); err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}

	return seeOther(c, postDetailPath(postID))
}

// DeletePostForm handles GET /posts/:id/delete
// Returns the post for the confirmation page.
func (s *Server) DeletePostForm(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	post, err := s.postService.GetOwnPost(c.Context(), postID, userID)
	if err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}

	return c.JSON(fiber.Map{"post": post})
}

// DeletePost handles POST /posts/:id/delete
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.postService.DeletePost(c.Context(), postID, userID); err != nil {
		return respondServiceError(c, err, postDetailPath(postID))
	}

	return seeOther(c, "/")
}
