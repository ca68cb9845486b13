package server

import (
	"net/http"
	"testing"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createAdminWithToken(t *testing.T, s *Server, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "hash", IsAdmin: true}
	require.NoError(t, db.Create(user).Error)

	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

func TestCategoryAdmin_CreateAndUpdate(t *testing.T) {
	s, app, db, _ := newTestServer(t)
	_, token := createAdminWithToken(t, s, db, "admin")

	resp, err := app.Test(jsonRequest(t, "POST", "/category", token, map[string]any{
		"title": "Travel",
		"slug":  "travel",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Update renames the title and unpublishes; the slug stays fixed even if
	// the form sends a different one.
	hidden := false
	resp, err = app.Test(jsonRequest(t, "POST", "/category/travel", token, map[string]any{
		"title":        "Travel Notes",
		"slug":         "renamed",
		"is_published": &hidden,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Category models.Category `json:"category"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "travel", body.Category.Slug)
	assert.Equal(t, "Travel Notes", body.Category.Title)
	assert.False(t, body.Category.IsPublished)

	// The unpublished category disappears from public browsing.
	resp, err = app.Test(jsonRequest(t, "GET", "/category/travel", "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategoryAdmin_UpdateUnknownSlugIs404(t *testing.T) {
	s, app, db, _ := newTestServer(t)
	_, token := createAdminWithToken(t, s, db, "admin")

	resp, err := app.Test(jsonRequest(t, "POST", "/category/ghost", token, map[string]any{
		"title": "Ghost",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategoryAdmin_RequiresAdmin(t *testing.T) {
	s, app, db, _ := newTestServer(t)
	_, token := createUserWithToken(t, s, db, "plainuser")

	require.NoError(t, db.Create(&models.Category{Title: "Food", Slug: "food", IsPublished: true}).Error)

	resp, err := app.Test(jsonRequest(t, "POST", "/category/food", token, map[string]any{
		"title": "Hijacked",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var kept models.Category
	require.NoError(t, db.Where("slug = ?", "food").First(&kept).Error)
	assert.Equal(t, "Food", kept.Title)
}
