package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akarpov/litepost/backend/internal/cache"
	"github.com/akarpov/litepost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FeedHandler serves the paginated post feeds: home, group and follow
type FeedHandler struct {
	postRepository  repositories.PostRepository
	groupRepository repositories.GroupRepository
	pageCache       *cache.PageCache
	logger          *zap.SugaredLogger
}

// NewFeedHandler creates a new FeedHandler. pageCache may be nil, in
// which case the home feed is always built fresh.
func NewFeedHandler(postRepo repositories.PostRepository, groupRepo repositories.GroupRepository, pageCache *cache.PageCache, logger *zap.SugaredLogger) *FeedHandler {
	return &FeedHandler{
		postRepository:  postRepo,
		groupRepository: groupRepo,
		pageCache:       pageCache,
		logger:          logger,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(public, protected *echo.Group) {
	public.GET("/", h.Home)
	public.GET("/group/:slug", h.GroupPosts)
	protected.GET("/follow", h.FollowIndex)
}

// Home returns one page of all posts, newest first. Pages are served from
// the response cache when present; staleness is bounded by the cache TTL.
func (h *FeedHandler) Home(c echo.Context) error {
	page := pageParam(c)
	key := fmt.Sprintf("feed:index:page:%d", page)

	if h.pageCache != nil {
		if body, ok := h.pageCache.Get(c.Request().Context(), key); ok {
			return c.JSONBlob(http.StatusOK, body)
		}
	}

	posts, total, err := h.postRepository.ListAll(page, PostsPerPage)
	if err != nil {
		h.logger.Errorw("home feed query failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load feed")
	}

	resp := echo.Map{
		"page": posts,
		"meta": paginationMeta(page, PostsPerPage, total),
	}
	if h.pageCache != nil {
		if body, err := json.Marshal(resp); err == nil {
			h.pageCache.Set(c.Request().Context(), key, body)
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// GroupPosts returns one page of a group's posts; unknown slugs are a 404
func (h *FeedHandler) GroupPosts(c echo.Context) error {
	slug := c.Param("slug")
	group, err := h.groupRepository.GetGroupBySlug(slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pageParam(c)
	posts, total, err := h.postRepository.ListByGroup(group.ID, page, PostsPerPage)
	if err != nil {
		h.logger.Errorw("group feed query failed", "slug", slug, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load feed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"group": group,
		"page":  posts,
		"meta":  paginationMeta(page, PostsPerPage, total),
	})
}

// FollowIndex returns one page of posts by authors the current user
// follows. Requires authentication.
func (h *FeedHandler) FollowIndex(c echo.Context) error {
	user := currentUser(c)

	page := pageParam(c)
	posts, total, err := h.postRepository.ListFollowing(user.ID, page, PostsPerPage)
	if err != nil {
		h.logger.Errorw("follow feed query failed", "user", user.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load feed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"page": posts,
		"meta": paginationMeta(page, PostsPerPage, total),
	})
}
