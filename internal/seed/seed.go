// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo data: the preset vocabularies plus
// generated users, posts, and comments spread across them.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	p, err := loadPreset()
	if err != nil {
		return err
	}
	categories, locations, err := applyPreset(db, p)
	if err != nil {
		return err
	}
	log.Printf("%d categories and %d locations available", len(categories), len(locations))

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d demo users created", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[factory.rng.Intn(len(users))]
		post := factory.BuildPost(author, func(post *models.Post) {
			// Most posts get a category and about half a location.
			if factory.rng.Intn(10) != 0 {
				post.CategoryID = &categories[factory.rng.Intn(len(categories))].ID
			}
			if factory.rng.Intn(2) == 0 {
				post.LocationID = &locations[factory.rng.Intn(len(locations))].ID
			}
		})
		posts = append(posts, post)
	}
	if err := factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d demo posts created", len(posts))

	commentCount := 0
	for _, post := range posts {
		for i := factory.rng.Intn(5); i > 0; i-- {
			commenter := users[factory.rng.Intn(len(users))]
			if _, err := factory.CreateComment(post, commenter); err != nil {
				return fmt.Errorf("failed to create comments: %w", err)
			}
			commentCount++
		}
	}
	log.Printf("%d demo comments created", commentCount)

	log.Println("Database seeding complete")
	return nil
}

// clearData removes previously generated demo data. Vocabulary rows are kept;
// the preset upsert refreshes them instead.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
