// Package service implements the application's business rules: input
// validation, ownership checks, and the post visibility policy.
package service

import (
	"context"
	"time"

	"blogicum/internal/clock"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/repository"
)

const maxTitleLen = 256

// PostService owns the post CRUD workflows and the listing contexts.
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	clk          clock.Clock
}

// PostInput is the bound form payload for creating or editing a post.
// Author is never part of the form; it is always taken from the requester.
type PostInput struct {
	Title       string    `json:"title" form:"title"`
	Text        string    `json:"text" form:"text"`
	PubDate     time.Time `json:"pub_date" form:"pub_date"`
	IsPublished *bool     `json:"is_published" form:"is_published"`
	ImageURL    string    `json:"image_url" form:"image_url"`
	CategoryID  *uint     `json:"category_id" form:"category_id"`
	LocationID  *uint     `json:"location_id" form:"location_id"`
}

// PostPage is a fully-assembled listing: one page of annotated posts plus
// the total for the pagination widget.
type PostPage struct {
	Posts []*models.Post `json:"posts"`
	Total int64          `json:"total"`
}

// NewPostService creates a PostService.
func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	clk clock.Clock,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		clk:          clk,
	}
}

// GetPost returns the post if the viewer may see it. A policy-hidden post
// yields the same NOT_FOUND as an absent one, so hidden posts do not leak.
func (s *PostService) GetPost(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewerID, s.clk.Now()) {
		middleware.HiddenPostDenials.Inc()
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

// ListIndex assembles the global index page: all publicly-visible posts,
// newest publication date first.
func (s *PostService) ListIndex(ctx context.Context, limit, offset int) (*PostPage, error) {
	f := repository.PostFilter{Limit: limit, Offset: offset}
	posts, err := s.postRepo.ListVisible(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountVisible(ctx, f)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Total: total}, nil
}

// ListByCategory assembles a category page. Unknown or unpublished slugs are
// NOT_FOUND before any posts are queried.
func (s *PostService) ListByCategory(ctx context.Context, slug string, limit, offset int) (*models.Category, *PostPage, error) {
	category, err := s.categoryRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	f := repository.PostFilter{CategoryID: category.ID, Limit: limit, Offset: offset}
	posts, err := s.postRepo.ListVisible(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.postRepo.CountVisible(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return category, &PostPage{Posts: posts, Total: total}, nil
}

// ListByAuthor assembles a profile listing. The profile owner sees every
// state, including future-dated and unpublished posts; everyone else sees
// only publicly-visible ones. The asymmetry is deliberate.
func (s *PostService) ListByAuthor(ctx context.Context, authorID, viewerID uint, limit, offset int) (*PostPage, error) {
	if viewerID != 0 && viewerID == authorID {
		posts, err := s.postRepo.ListByAuthor(ctx, authorID, limit, offset)
		if err != nil {
			return nil, err
		}
		total, err := s.postRepo.CountByAuthor(ctx, authorID)
		if err != nil {
			return nil, err
		}
		return &PostPage{Posts: posts, Total: total}, nil
	}

	f := repository.PostFilter{AuthorID: authorID, Limit: limit, Offset: offset}
	posts, err := s.postRepo.ListVisible(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountVisible(ctx, f)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Total: total}, nil
}

// CreatePost validates the form input and persists a new post authored by
// the requester. A zero PubDate means "publish now".
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in PostInput) (*models.Post, error) {
	if err := s.validateInput(ctx, &in); err != nil {
		return nil, err
	}

	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}

	post := &models.Post{
		Title:       in.Title,
		Text:        in.Text,
		PubDate:     in.PubDate,
		IsPublished: published,
		ImageURL:    in.ImageURL,
		AuthorID:    authorID,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	scheduled := "false"
	if post.PubDate.After(s.clk.Now()) {
		scheduled = "true"
	}
	middleware.PostsPublished.WithLabelValues(scheduled).Inc()

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost binds the form to the existing post and saves it. A non-author
// requester gets a NOT_OWNER error and the store stays untouched.
func (s *PostService) UpdatePost(ctx context.Context, postID, requesterID uint, in PostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != requesterID {
		return nil, models.NewNotOwnerError("post")
	}
	if err := s.validateInput(ctx, &in); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Text = in.Text
	post.PubDate = in.PubDate
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}
	post.ImageURL = in.ImageURL
	post.CategoryID = in.CategoryID
	post.LocationID = in.LocationID
	// Preloaded relations may be stale after the rebind; drop them so GORM
	// does not resurrect the old associations on save.
	post.Category = nil
	post.Location = nil

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// GetOwnPost loads a post for the edit/delete form. Non-owners get a
// NOT_OWNER error so the handler can issue the silent redirect.
func (s *PostService) GetOwnPost(ctx context.Context, postID, requesterID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != requesterID {
		return nil, models.NewNotOwnerError("post")
	}
	return post, nil
}

// DeletePost removes the post (and its comments) after the ownership check.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return models.NewNotOwnerError("post")
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *PostService) validateInput(ctx context.Context, in *PostInput) error {
	if in.Title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 256 characters)")
	}
	if in.Text == "" {
		return models.NewValidationError("Text is required")
	}
	if in.PubDate.IsZero() {
		in.PubDate = s.clk.Now()
	}
	if in.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			return models.NewValidationError("Unknown category")
		}
	}
	if in.LocationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *in.LocationID); err != nil {
			return models.NewValidationError("Unknown location")
		}
	}
	return nil
}
