package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

func visiblePostRepo(clk interface{ Now() time.Time }) *postRepoStub {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 10, IsPublished: true, PubDate: clk.Now().Add(-time.Hour)}, nil
	}
	return repo
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	clk := fixedAt(t, "2024-06-01T12:00:00Z")
	svc := NewCommentService(noopCommentRepo(), visiblePostRepo(clk), clk)

	tests := []struct {
		name string
		text string
	}{
		{name: "empty text", text: ""},
		{name: "text too long", text: strings.Repeat("x", 4001)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateComment(context.Background(), 1, 5, CommentInput{Text: tc.text})
			assertValidationError(t, err)
		})
	}
}

func TestCommentService_CreateComment_HiddenPost(t *testing.T) {
	t.Parallel()

	clk := fixedAt(t, "2024-06-01T12:00:00Z")
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 10, IsPublished: false, PubDate: clk.Now().Add(-time.Hour)}, nil
	}

	created := false
	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, _ *models.Comment) error {
		created = true
		return nil
	}

	svc := NewCommentService(commentRepo, postRepo, clk)
	_, err := svc.CreateComment(context.Background(), 1, 5, CommentInput{Text: "hello"})

	assertNotFoundError(t, err)
	assert.False(t, created, "no comment may land on a hidden post")
}

func TestCommentService_CreateComment_AuthorCommentsOwnHiddenPost(t *testing.T) {
	t.Parallel()

	clk := fixedAt(t, "2024-06-01T12:00:00Z")
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 10, IsPublished: false, PubDate: clk.Now().Add(time.Hour)}, nil
	}

	svc := NewCommentService(noopCommentRepo(), postRepo, clk)
	_, err := svc.CreateComment(context.Background(), 1, 10, CommentInput{Text: "note to self"})
	require.NoError(t, err)
}

func TestCommentService_UpdateComment_OwnershipAndRoute(t *testing.T) {
	t.Parallel()

	clk := fixedAt(t, "2024-06-01T12:00:00Z")

	tests := []struct {
		name        string
		comment     *models.Comment
		postID      uint
		requesterID uint
		check       func(*testing.T, error)
	}{
		{
			name:        "not the author",
			comment:     &models.Comment{ID: 3, PostID: 1, AuthorID: 10},
			postID:      1,
			requesterID: 99,
			check:       assertNotOwnerError,
		},
		{
			name:        "comment belongs to another post",
			comment:     &models.Comment{ID: 3, PostID: 2, AuthorID: 10},
			postID:      1,
			requesterID: 10,
			check:       assertNotFoundError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			commentRepo := noopCommentRepo()
			commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
				return tc.comment, nil
			}
			updated := false
			commentRepo.updateFn = func(_ context.Context, _ *models.Comment) error {
				updated = true
				return nil
			}

			svc := NewCommentService(commentRepo, visiblePostRepo(clk), clk)
			_, err := svc.UpdateComment(context.Background(), tc.postID, 3, tc.requesterID, CommentInput{Text: "edit"})

			tc.check(t, err)
			assert.False(t, updated, "update must not reach the store")
		})
	}
}

func TestCommentService_DeleteComment_NotOwner(t *testing.T) {
	t.Parallel()

	clk := fixedAt(t, "2024-06-01T12:00:00Z")
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: 3, PostID: 1, AuthorID: 10}, nil
	}
	deleted := false
	commentRepo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}

	svc := NewCommentService(commentRepo, visiblePostRepo(clk), clk)
	err := svc.DeleteComment(context.Background(), 1, 3, 99)

	assertNotOwnerError(t, err)
	assert.False(t, deleted, "delete must not reach the store")
}

func TestCommentService_ListComments_HiddenPost(t *testing.T) {
	t.Parallel()

	clk := fixedAt(t, "2024-06-01T12:00:00Z")
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 10, IsPublished: true, PubDate: clk.Now().Add(time.Hour)}, nil
	}

	svc := NewCommentService(noopCommentRepo(), postRepo, clk)
	_, err := svc.ListComments(context.Background(), 1, 99)
	assertNotFoundError(t, err)
}
