package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_GetPublishedBySlug(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	createTestCategory(t, db, "travel", true)
	createTestCategory(t, db, "secret", false)

	t.Run("published slug resolves", func(t *testing.T) {
		category, err := repo.GetPublishedBySlug(ctx, "travel")
		require.NoError(t, err)
		assert.Equal(t, "travel", category.Slug)
	})

	t.Run("unpublished slug is not found", func(t *testing.T) {
		_, err := repo.GetPublishedBySlug(ctx, "secret")
		requireNotFound(t, err)
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		_, err := repo.GetPublishedBySlug(ctx, "nope")
		requireNotFound(t, err)
	})
}

func TestCategoryRepository_Create_DuplicateSlug(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Category{Title: "A", Slug: "dup", IsPublished: true}))

	err := repo.Create(ctx, &models.Category{Title: "B", Slug: "dup", IsPublished: true})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
}

func TestCategoryRepository_Delete_DetachesPosts(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	clk := testClock(t)
	repo := NewCategoryRepository(db)
	postRepo := NewPostRepository(db, clk)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	category := createTestCategory(t, db, "doomed", true)

	post := &models.Post{Title: "kept", Text: "t", PubDate: clk.Now().Add(-time.Hour), IsPublished: true, AuthorID: author.ID, CategoryID: &category.ID}
	require.NoError(t, postRepo.Create(ctx, post))

	require.NoError(t, repo.Delete(ctx, category.ID))

	// The post survives with its category reference cleared, and is now
	// visible through the nil-category branch of the policy.
	kept, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.CategoryID)

	visible, err := postRepo.ListVisible(ctx, PostFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "kept", visible[0].Title)
}

func TestLocationRepository_Delete_DetachesPosts(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	clk := testClock(t)
	repo := NewLocationRepository(db)
	postRepo := NewPostRepository(db, clk)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	location := &models.Location{Name: "Atlantis", IsPublished: true}
	require.NoError(t, repo.Create(ctx, location))

	post := &models.Post{Title: "kept", Text: "t", PubDate: clk.Now().Add(-time.Hour), IsPublished: true, AuthorID: author.ID, LocationID: &location.ID}
	require.NoError(t, postRepo.Create(ctx, post))

	require.NoError(t, repo.Delete(ctx, location.ID))

	kept, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.LocationID)
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}
