package handlers

import (
	"net/http"

	"github.com/akarpov/litepost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileHandler serves author profile pages
type ProfileHandler struct {
	userRepository   repositories.UserRepository
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
	logger           *zap.SugaredLogger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, followRepo repositories.FollowRepository, logger *zap.SugaredLogger) *ProfileHandler {
	return &ProfileHandler{
		userRepository:   userRepo,
		postRepository:   postRepo,
		followRepository: followRepo,
		logger:           logger,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(public *echo.Group) {
	public.GET("/profile/:username", h.Profile)
}

// Profile returns one page of an author's posts plus their total post
// count and, for authenticated requesters, whether they already follow
// the author. Unknown usernames are a 404.
func (h *ProfileHandler) Profile(c echo.Context) error {
	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pageParam(c)
	posts, total, err := h.postRepository.ListByAuthor(author.ID, page, PostsPerPage)
	if err != nil {
		h.logger.Errorw("profile feed query failed", "author", author.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load feed")
	}

	following := false
	if user := currentUser(c); user != nil {
		following, err = h.followRepository.IsFollowing(user.ID, author.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"author":    author.ToCompact(),
		"page":      posts,
		"count":     total,
		"following": following,
		"meta":      paginationMeta(page, PostsPerPage, total),
	})
}
