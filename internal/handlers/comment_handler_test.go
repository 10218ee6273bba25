package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/akarpov/litepost/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCommentHandler(fx *fixture) *CommentHandler {
	return NewCommentHandler(fx.comments, fx.posts, zap.NewNop().Sugar())
}

func commentContext(form url.Values, user *models.User) echo.Context {
	method := http.MethodGet
	if form != nil {
		method = http.MethodPost
	}
	c, _ := request(method, "/posts/owner/1/comment", form, user)
	c.SetParamNames("username", "id")
	c.SetParamValues("owner", "1")
	return c
}

func TestAddCommentBindsPostAndAuthor(t *testing.T) {
	fx := newFixture()
	owner := fx.addUser(t, "owner")
	reader := fx.addUser(t, "reader")
	post := seedPost(t, fx, owner, "original")
	h := newCommentHandler(fx)

	c := commentContext(url.Values{"text": {"nice one"}}, reader)
	require.NoError(t, h.AddComment(c))

	require.Len(t, fx.comments.comments, 1)
	comment := fx.comments.comments[0]
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, reader.ID, comment.AuthorID)
	assert.Equal(t, "nice one", comment.Text)
	assert.False(t, comment.Created.IsZero())
	resp := c.Response()
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/posts/owner/1", resp.Header().Get(echo.HeaderLocation))
}

func TestAddCommentEmptyTextIsRejected(t *testing.T) {
	fx := newFixture()
	owner := fx.addUser(t, "owner")
	seedPost(t, fx, owner, "original")
	h := newCommentHandler(fx)

	c := commentContext(url.Values{"text": {"  "}}, owner)
	require.NoError(t, h.AddComment(c))
	assert.Empty(t, fx.comments.comments)
	assert.Equal(t, http.StatusBadRequest, c.Response().Status)
}

func TestAddCommentUnknownPostIs404(t *testing.T) {
	fx := newFixture()
	owner := fx.addUser(t, "owner")
	h := newCommentHandler(fx)

	c := commentContext(url.Values{"text": {"hello"}}, owner)
	err := h.AddComment(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
