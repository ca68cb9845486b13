// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"blogicum/internal/clock"
	"blogicum/internal/models"

	"gorm.io/gorm"
)

// visibleExpr is the publication filter applied to every public listing:
// published, publication date reached, and category (if any) published.
const visibleExpr = "posts.is_published = ? AND posts.pub_date <= ? " +
	"AND (posts.category_id IS NULL OR categories.is_published = ?)"

// commentCountExpr annotates each row with its live comment count.
const commentCountExpr = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comment_count"

// PostFilter narrows a visible-post listing to one category or one author.
// Zero values mean no restriction.
type PostFilter struct {
	CategoryID uint
	AuthorID   uint
	Limit      int
	Offset     int
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListVisible(ctx context.Context, f PostFilter) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	CountVisible(ctx context.Context, f PostFilter) (int64, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db  *gorm.DB
	clk clock.Clock
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB, clk clock.Clock) PostRepository {
	return &postRepository{db: db, clk: clk}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID loads a post with its relations and comment count. Visibility is
// not applied here; the service decides per viewer after the fetch.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select(commentCountExpr).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListVisible returns publicly-visible posts, newest publication date first,
// with comment counts attached. The result is fully specified; no query
// state leaks to the caller.
func (r *postRepository) ListVisible(ctx context.Context, f PostFilter) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyFilter(r.visibleQuery(ctx), f).
		Order("posts.pub_date DESC, posts.id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListByAuthor returns every post of one author regardless of visibility
// state. Used for the owner's own profile page only.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Select(commentCountExpr).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Where("posts.author_id = ?", authorID).
		Order("posts.pub_date DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountVisible(ctx context.Context, f PostFilter) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("LEFT JOIN categories ON categories.id = posts.category_id").
		Where(visibleExpr, true, r.clk.Now(), true)
	if f.CategoryID != 0 {
		q = q.Where("posts.category_id = ?", f.CategoryID)
	}
	if f.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the post and, in the same transaction, every comment
// attached to it.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) visibleQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Select(commentCountExpr).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Joins("LEFT JOIN categories ON categories.id = posts.category_id").
		Where(visibleExpr, true, r.clk.Now(), true)
}

func (r *postRepository) applyFilter(q *gorm.DB, f PostFilter) *gorm.DB {
	if f.CategoryID != 0 {
		q = q.Where("posts.category_id = ?", f.CategoryID)
	}
	if f.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	return q
}
