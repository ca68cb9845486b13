package repository

import (
	"context"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByPost_Ordering(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	clk := testClock(t)
	repo := NewCommentRepository(db)
	postRepo := NewPostRepository(db, clk)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")

	post := &models.Post{Title: "p", Text: "t", PubDate: clk.Now(), IsPublished: true, AuthorID: author.ID}
	require.NoError(t, postRepo.Create(ctx, post))

	base := clk.Now()
	for i, text := range []string{"first", "second", "third"} {
		comment := &models.Comment{Text: text, PostID: post.ID, AuthorID: commenter.ID}
		comment.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, comment))
	}

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)

	// Oldest first, unlike post listings.
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "third", comments[2].Text)
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	requireNotFound(t, err)
}
