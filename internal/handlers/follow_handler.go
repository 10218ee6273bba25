package handlers

import (
	"net/http"

	"github.com/akarpov/litepost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const followFeedPath = "/follow"

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	logger           *zap.SugaredLogger
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, logger *zap.SugaredLogger) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		logger:           logger,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(protected *echo.Group) {
	protected.POST("/profile/:username/follow", h.Follow)
	protected.POST("/profile/:username/unfollow", h.Unfollow)
}

// Follow creates the (current user, author) edge and redirects to the
// follow feed. Following yourself or someone you already follow creates
// nothing and still redirects — both are no-ops, not errors.
func (h *FollowHandler) Follow(c echo.Context) error {
	user := currentUser(c)

	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if user.ID == author.ID {
		return c.Redirect(http.StatusFound, followFeedPath)
	}

	if err := h.followRepository.CreateFollow(user.ID, author.ID); err != nil {
		h.logger.Errorw("creating follow failed", "user", user.ID, "author", author.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to follow")
	}

	return c.Redirect(http.StatusFound, followFeedPath)
}

// Unfollow deletes the (current user, author) edge if present; a missing
// edge is a no-op.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	user := currentUser(c)

	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.followRepository.DeleteFollow(user.ID, author.ID); err != nil {
		h.logger.Errorw("deleting follow failed", "user", user.ID, "author", author.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to unfollow")
	}

	return c.Redirect(http.StatusFound, followFeedPath)
}
