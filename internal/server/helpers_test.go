package server

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func paginationCtx(t *testing.T, query string) (*fiber.App, *fiber.Ctx) {
	t.Helper()
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	c.Request().SetRequestURI("/?" + query)
	return app, c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "", 1, 10, 0},
		{"second page", "page=2", 2, 10, 10},
		{"custom limit", "page=3&limit=5", 3, 5, 10},
		{"limit capped", "limit=500", 1, 100, 0},
		{"zero limit falls back", "limit=0", 1, 10, 0},
		{"negative page clamps", "page=-4", 1, 10, 0},
		{"garbage is ignored", "page=abc&limit=xyz", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, c := paginationCtx(t, tt.query)
			defer app.ReleaseCtx(c)

			p := parsePagination(c, 10)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "comment ID", humanizeParam("commentId"))
	assert.Equal(t, "parent post ID", humanizeParam("parentPostId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}

func TestDetailPaths(t *testing.T) {
	assert.Equal(t, "/posts/42", postDetailPath(42))
	assert.Equal(t, "/profile/writer", profilePath("writer"))
}

func TestRespondServiceError_UnknownErrorIs500(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondServiceError(c, assert.AnError, "/posts/1")
	})

	resp, err := app.Test(jsonRequest(t, "GET", "/boom", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
