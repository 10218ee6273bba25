package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akarpov/litepost/backend/internal/forms"
	"github.com/akarpov/litepost/backend/internal/models"
	"github.com/akarpov/litepost/backend/internal/repositories"
	"github.com/akarpov/litepost/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Labels for the new/edit form bundle the presentation layer renders.
const (
	operationAdd  = "Add post"
	operationEdit = "Edit post"
	actionAdd     = "Add"
	actionSave    = "Save"
)

// PostHandler handles HTTP requests for single posts and the post forms
type PostHandler struct {
	postRepository    repositories.PostRepository
	groupRepository   repositories.GroupRepository
	commentRepository repositories.CommentRepository
	images            *storage.ImageStore
	logger            *zap.SugaredLogger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, groupRepo repositories.GroupRepository, commentRepo repositories.CommentRepository, images *storage.ImageStore, logger *zap.SugaredLogger) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		groupRepository:   groupRepo,
		commentRepository: commentRepo,
		images:            images,
		logger:            logger,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts/:username/:id", h.GetPost)
	protected.GET("/new", h.NewPost)
	protected.POST("/new", h.NewPost)
	protected.GET("/posts/:username/:id/edit", h.EditPost)
	protected.POST("/posts/:username/:id/edit", h.EditPost)
}

// lookupPost resolves the (username, id) pair from the route, mapping a
// bad id or an unmatched pair to 404.
func (h *PostHandler) lookupPost(c echo.Context) (*models.Post, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	post, err := h.postRepository.GetPostByAuthorAndID(c.Param("username"), uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return post, nil
}

// bindPostForm reads the multipart new/edit post submission. The image,
// when present, is stored immediately so the form carries its final name.
func (h *PostHandler) bindPostForm(c echo.Context) (*forms.PostForm, forms.Errors, error) {
	form := &forms.PostForm{Text: c.FormValue("text")}

	if raw := c.FormValue("group"); raw != "" {
		groupID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			errs := forms.Errors{}
			errs.Add("group", "invalid group")
			return form, errs, nil
		}
		gid := uint(groupID)
		form.GroupID = &gid
	}

	if file, err := c.FormFile("image"); err == nil {
		name, err := h.images.Save(file)
		if err != nil {
			return nil, nil, err
		}
		form.Image = name
	}
	return form, nil, nil
}

// GetPost returns one post with its author, the author's post count, the
// comment list and a fresh comment form. Public.
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.lookupPost(c)
	if err != nil {
		return err
	}

	count, err := h.postRepository.CountByAuthor(post.AuthorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"author":   post.Author.ToCompact(),
		"post":     post,
		"count":    count,
		"comments": comments,
		"form":     forms.CommentForm{},
	})
}

// NewPost renders the empty post form on GET and creates a post on POST.
// The created post is owned by the current user; success redirects to the
// home feed.
func (h *PostHandler) NewPost(c echo.Context) error {
	user := currentUser(c)

	if c.Request().Method != http.MethodPost {
		return c.JSON(http.StatusOK, echo.Map{
			"form":      forms.PostForm{},
			"operation": operationAdd,
			"action":    actionAdd,
		})
	}

	form, errs, err := h.bindPostForm(c)
	if err != nil {
		h.logger.Errorw("storing post image failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store image")
	}
	var draft *models.Post
	if errs == nil {
		draft, errs, err = form.Validate(h.groupRepository.GroupExists)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	if errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"form":      form,
			"errors":    errs,
			"operation": operationAdd,
			"action":    actionAdd,
		})
	}

	draft.AuthorID = user.ID
	draft.PubDate = time.Now()
	if err := h.postRepository.CreatePost(draft); err != nil {
		h.logger.Errorw("creating post failed", "user", user.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create post")
	}

	return c.Redirect(http.StatusFound, "/")
}

// EditPost lets a post's author change its text, group and image. Anyone
// else authenticated is silently redirected to the post view. A
// successful edit refreshes pub_date to the moment of the edit.
func (h *PostHandler) EditPost(c echo.Context) error {
	user := currentUser(c)

	post, err := h.lookupPost(c)
	if err != nil {
		return err
	}

	if user.ID != post.AuthorID {
		return c.Redirect(http.StatusFound, postViewPath(post.Author.Username, post.ID))
	}

	if c.Request().Method != http.MethodPost {
		form := forms.PostForm{
			Text:    post.Text,
			GroupID: post.GroupID,
			Image:   post.Image,
		}
		return c.JSON(http.StatusOK, echo.Map{
			"form":      form,
			"operation": operationEdit,
			"action":    actionSave,
			"post":      post,
		})
	}

	form, errs, err := h.bindPostForm(c)
	if err != nil {
		h.logger.Errorw("storing post image failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store image")
	}
	var draft *models.Post
	if errs == nil {
		draft, errs, err = form.Validate(h.groupRepository.GroupExists)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	if errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"form":      form,
			"errors":    errs,
			"operation": operationEdit,
			"action":    actionSave,
			"post":      post,
		})
	}

	post.Text = draft.Text
	post.GroupID = draft.GroupID
	post.Group = nil
	if draft.Image != "" {
		post.Image = draft.Image
	}
	post.PubDate = time.Now()

	if err := h.postRepository.UpdatePost(post); err != nil {
		h.logger.Errorw("updating post failed", "post", post.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update post")
	}

	return c.Redirect(http.StatusFound, postViewPath(post.Author.Username, post.ID))
}
