package service

import (
	"context"
	"strings"

	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/validation"
)

// TaxonomyService owns the admin-managed vocabularies: categories and
// locations.
type TaxonomyService struct {
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
}

// CategoryInput is the bound admin category form.
type CategoryInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Slug        string `json:"slug" form:"slug"`
	IsPublished *bool  `json:"is_published" form:"is_published"`
}

// LocationInput is the bound admin location form.
type LocationInput struct {
	Name        string `json:"name" form:"name"`
	IsPublished *bool  `json:"is_published" form:"is_published"`
}

// NewTaxonomyService creates a TaxonomyService.
func NewTaxonomyService(categoryRepo repository.CategoryRepository, locationRepo repository.LocationRepository) *TaxonomyService {
	return &TaxonomyService{categoryRepo: categoryRepo, locationRepo: locationRepo}
}

// CreateCategory validates and persists a new category.
func (s *TaxonomyService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if err := validation.ValidateSlug(in.Slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}
	category := &models.Category{
		Title:       in.Title,
		Description: in.Description,
		Slug:        in.Slug,
		IsPublished: published,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory applies the form to an existing category. The slug is
// immutable; published URLs must not break.
func (s *TaxonomyService) UpdateCategory(ctx context.Context, slug string, in CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	category.Title = in.Title
	category.Description = in.Description
	if in.IsPublished != nil {
		category.IsPublished = *in.IsPublished
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category and detaches its posts.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, slug string) error {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, category.ID)
}

// ListCategories returns the published categories for navigation.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListPublished(ctx)
}

// CreateLocation validates and persists a new location.
func (s *TaxonomyService) CreateLocation(ctx context.Context, in LocationInput) (*models.Location, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}
	location := &models.Location{Name: in.Name, IsPublished: published}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// DeleteLocation removes the location and detaches its posts.
func (s *TaxonomyService) DeleteLocation(ctx context.Context, id uint) error {
	if _, err := s.locationRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.locationRepo.Delete(ctx, id)
}

// ListLocations returns the published locations for the post form.
func (s *TaxonomyService) ListLocations(ctx context.Context) ([]*models.Location, error) {
	return s.locationRepo.ListPublished(ctx)
}
