package handlers

import (
	"net/http"

	"github.com/akarpov/litepost/backend/internal/forms"
	"github.com/akarpov/litepost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GroupHandler handles group creation. Groups are an out-of-band admin
// concern; regular browsing of a group's posts lives on the feed handler.
type GroupHandler struct {
	groupRepository repositories.GroupRepository
	logger          *zap.SugaredLogger
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository, logger *zap.SugaredLogger) *GroupHandler {
	return &GroupHandler{
		groupRepository: groupRepo,
		logger:          logger,
	}
}

// RegisterGroupRoutes registers group-related routes
func (h *GroupHandler) RegisterGroupRoutes(protected *echo.Group) {
	protected.POST("/groups", h.CreateGroup)
}

// CreateGroup creates a category. A duplicate slug surfaces as a field
// error on the form, not a conflict.
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	form := forms.GroupForm{
		Title:       c.FormValue("title"),
		Slug:        c.FormValue("slug"),
		Description: c.FormValue("description"),
	}

	group, errs, err := form.Validate(h.groupRepository.SlugTaken)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"form":   form,
			"errors": errs,
		})
	}

	if err := h.groupRepository.CreateGroup(group); err != nil {
		h.logger.Errorw("creating group failed", "slug", group.Slug, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create group")
	}

	return c.JSON(http.StatusCreated, group)
}
