package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akarpov/litepost/backend/internal/forms"
	"github.com/akarpov/litepost/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentHandler handles adding comments to posts
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	logger            *zap.SugaredLogger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, logger *zap.SugaredLogger) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		logger:            logger,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(protected *echo.Group) {
	protected.GET("/posts/:username/:id/comment", h.AddComment)
	protected.POST("/posts/:username/:id/comment", h.AddComment)
}

// AddComment renders the empty comment form on GET and creates a comment
// on POST, bound to the target post and the current user. Success
// redirects to the post view.
func (h *CommentHandler) AddComment(c echo.Context) error {
	user := currentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	post, err := h.postRepository.GetPostByAuthorAndID(c.Param("username"), uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if c.Request().Method != http.MethodPost {
		return c.JSON(http.StatusOK, echo.Map{"form": forms.CommentForm{}})
	}

	form := forms.CommentForm{Text: c.FormValue("text")}
	draft, errs := form.Validate()
	if errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"form":   form,
			"errors": errs,
		})
	}

	draft.PostID = post.ID
	draft.AuthorID = user.ID
	draft.Created = time.Now()
	if err := h.commentRepository.CreateComment(draft); err != nil {
		h.logger.Errorw("creating comment failed", "post", post.ID, "user", user.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create comment")
	}

	return c.Redirect(http.StatusFound, postViewPath(post.Author.Username, post.ID))
}
