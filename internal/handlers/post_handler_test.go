package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/akarpov/litepost/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPostHandler(fx *fixture) *PostHandler {
	return NewPostHandler(fx.posts, fx.groups, fx.comments, nil, zap.NewNop().Sugar())
}

func TestNewPostCreatesPostForCurrentUser(t *testing.T) {
	fx := newFixture()
	user := fx.addUser(t, "leo")
	h := newPostHandler(fx)

	form := url.Values{"text": {"hello"}}
	c, rec := request(http.MethodPost, "/new", form, user)
	require.NoError(t, h.NewPost(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	require.Len(t, fx.posts.posts, 1)
	created := fx.posts.posts[0]
	assert.Equal(t, user.ID, created.AuthorID)
	assert.Equal(t, "hello", created.Text)
	assert.Nil(t, created.GroupID)
	assert.WithinDuration(t, time.Now(), created.PubDate, time.Minute)
}

func TestNewPostEmptyTextIsRejected(t *testing.T) {
	fx := newFixture()
	user := fx.addUser(t, "leo")
	h := newPostHandler(fx)

	for _, text := range []string{"", "   \t\n"} {
		form := url.Values{"text": {text}}
		c, rec := request(http.MethodPost, "/new", form, user)
		require.NoError(t, h.NewPost(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, fx.posts.posts, "no post persisted for %q", text)

		var resp struct {
			Errors map[string][]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Errors, "text")
	}
}

func TestNewPostUnknownGroupIsRejected(t *testing.T) {
	fx := newFixture()
	user := fx.addUser(t, "leo")
	h := newPostHandler(fx)

	form := url.Values{"text": {"hello"}, "group": {"42"}}
	c, rec := request(http.MethodPost, "/new", form, user)
	require.NoError(t, h.NewPost(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fx.posts.posts)
}

func TestNewPostFormRendersOnGet(t *testing.T) {
	fx := newFixture()
	user := fx.addUser(t, "leo")
	h := newPostHandler(fx)

	c, rec := request(http.MethodGet, "/new", nil, user)
	require.NoError(t, h.NewPost(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "form")
	assert.Contains(t, resp, "operation")
	assert.Empty(t, fx.posts.posts)
}

func seedPost(t *testing.T, fx *fixture, author *models.User, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, PubDate: time.Now().Add(-time.Hour), AuthorID: author.ID}
	require.NoError(t, fx.posts.CreatePost(post))
	return post
}

func editContext(post *models.Post, form url.Values, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := request(http.MethodPost, "/posts/"+post.Author.Username+"/1/edit", form, user)
	c.SetParamNames("username", "id")
	c.SetParamValues(post.Author.Username, "1")
	return c, rec
}

func TestEditPostNonOwnerIsRedirectedUnchanged(t *testing.T) {
	fx := newFixture()
	owner := fx.addUser(t, "owner")
	other := fx.addUser(t, "other")
	post := seedPost(t, fx, owner, "original")
	h := newPostHandler(fx)

	form := url.Values{"text": {"hijacked"}}
	c, rec := editContext(post, form, other)
	require.NoError(t, h.EditPost(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/owner/1", rec.Header().Get(echo.HeaderLocation))
	stored, err := fx.posts.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Text)
}

func TestEditPostOwnerUpdatesTextAndRefreshesPubDate(t *testing.T) {
	fx := newFixture()
	owner := fx.addUser(t, "owner")
	post := seedPost(t, fx, owner, "original")
	before := post.PubDate
	h := newPostHandler(fx)

	form := url.Values{"text": {"revised"}}
	c, rec := editContext(post, form, owner)
	require.NoError(t, h.EditPost(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/owner/1", rec.Header().Get(echo.HeaderLocation))
	require.Len(t, fx.posts.posts, 1, "edit must not change the post count")
	stored, err := fx.posts.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "revised", stored.Text)
	assert.True(t, stored.PubDate.After(before), "pub_date refreshed on edit")
}

func TestGetPostUnknownPairIs404(t *testing.T) {
	fx := newFixture()
	owner := fx.addUser(t, "owner")
	fx.addUser(t, "other")
	seedPost(t, fx, owner, "original")
	h := newPostHandler(fx)

	// Existing ID but the wrong author's username.
	c, _ := request(http.MethodGet, "/posts/other/1", nil, nil)
	c.SetParamNames("username", "id")
	c.SetParamValues("other", "1")

	err := h.GetPost(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestGetPostIncludesCommentsAndCount(t *testing.T) {
	fx := newFixture()
	owner := fx.addUser(t, "owner")
	post := seedPost(t, fx, owner, "original")
	seedPost(t, fx, owner, "another")
	require.NoError(t, fx.comments.CreateComment(&models.Comment{
		PostID: post.ID, AuthorID: owner.ID, Text: "first", Created: time.Now(),
	}))
	h := newPostHandler(fx)

	c, rec := request(http.MethodGet, "/posts/owner/1", nil, nil)
	c.SetParamNames("username", "id")
	c.SetParamValues("owner", "1")
	require.NoError(t, h.GetPost(c))

	var resp struct {
		Count    int64            `json:"count"`
		Comments []models.Comment `json:"comments"`
		Post     models.Post      `json:"post"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Count)
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "first", resp.Comments[0].Text)
	assert.Equal(t, "original", resp.Post.Text)
}
