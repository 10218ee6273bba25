package handlers

import (
	"fmt"
	"math"
	"strconv"

	"github.com/akarpov/litepost/backend/internal/middleware"
	"github.com/akarpov/litepost/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// PostsPerPage is the fixed feed page size.
const PostsPerPage = 10

// currentUser returns the authenticated user resolved by the session
// middleware, or nil for anonymous requests.
func currentUser(c echo.Context) *models.User {
	if user, ok := c.Get(middleware.ContextUserKey).(*models.User); ok {
		return user
	}
	return nil
}

// pageParam reads the 1-based page query parameter; absent or invalid
// values fall back to page 1. A page past the last one is left as-is and
// simply produces an empty page.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginationMeta builds the pagination block attached to every feed
// response.
func paginationMeta(page, pageSize int, totalItems int64) echo.Map {
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      totalItems,
		"itemsPerPage":    pageSize,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}

// postViewPath is the canonical location of a single post.
func postViewPath(username string, postID uint) string {
	return fmt.Sprintf("/posts/%s/%d", username, postID)
}
