package service

import (
	"context"

	"blogicum/internal/clock"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/repository"
)

const maxCommentLen = 4000

// CommentService owns the comment workflows. Every operation is anchored to
// a post the requester can actually see.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	clk         clock.Clock
}

// CommentInput is the bound comment form.
type CommentInput struct {
	Text string `json:"text" form:"text"`
}

// NewCommentService creates a CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, clk clock.Clock) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, clk: clk}
}

// CreateComment attaches a comment to a visible post. Commenting on a hidden
// post fails with the same NOT_FOUND the detail page would give.
func (s *CommentService) CreateComment(ctx context.Context, postID, authorID uint, in CommentInput) (*models.Comment, error) {
	if err := validateCommentText(in.Text); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(authorID, s.clk.Now()) {
		middleware.HiddenPostDenials.Inc()
		return nil, models.NewNotFoundError("Post", postID)
	}

	comment := &models.Comment{
		Text:     in.Text,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	middleware.CommentsCreated.Inc()
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments oldest first, provided the viewer
// can see the post itself.
func (s *CommentService) ListComments(ctx context.Context, postID, viewerID uint) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewerID, s.clk.Now()) {
		middleware.HiddenPostDenials.Inc()
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// GetOwnComment loads a comment for its edit/delete form. The comment must
// belong to the post named in the route and to the requester.
func (s *CommentService) GetOwnComment(ctx context.Context, postID, commentID, requesterID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if comment.AuthorID != requesterID {
		return nil, models.NewNotOwnerError("comment")
	}
	return comment, nil
}

// UpdateComment replaces the comment text after the ownership and route
// consistency checks.
func (s *CommentService) UpdateComment(ctx context.Context, postID, commentID, requesterID uint, in CommentInput) (*models.Comment, error) {
	if err := validateCommentText(in.Text); err != nil {
		return nil, err
	}
	comment, err := s.GetOwnComment(ctx, postID, commentID, requesterID)
	if err != nil {
		return nil, err
	}
	comment.Text = in.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID)
}

// DeleteComment removes the comment after the same checks.
func (s *CommentService) DeleteComment(ctx context.Context, postID, commentID, requesterID uint) error {
	if _, err := s.GetOwnComment(ctx, postID, commentID, requesterID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func validateCommentText(text string) error {
	if text == "" {
		return models.NewValidationError("Text is required")
	}
	if len(text) > maxCommentLen {
		return models.NewValidationError("Comment too long (max 4000 characters)")
	}
	return nil
}
