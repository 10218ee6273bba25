package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/akarpov/litepost/backend/internal/middleware"
	"github.com/akarpov/litepost/backend/internal/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// In-memory repository fakes so handler behavior can be asserted against
// real state transitions (counts, edges) without a database.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}}
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UsernameTaken(username string) (bool, error) {
	_, err := f.GetUserByUsername(username)
	return err == nil, nil
}

type fakeFollowRepo struct {
	edges map[[2]uint]bool
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: map[[2]uint]bool{}}
}

func (f *fakeFollowRepo) CreateFollow(userID, authorID uint) error {
	f.edges[[2]uint{userID, authorID}] = true
	return nil
}

func (f *fakeFollowRepo) DeleteFollow(userID, authorID uint) error {
	delete(f.edges, [2]uint{userID, authorID})
	return nil
}

func (f *fakeFollowRepo) IsFollowing(userID, authorID uint) (bool, error) {
	return f.edges[[2]uint{userID, authorID}], nil
}

func (f *fakeFollowRepo) CountFollowers(authorID uint) (int64, error) {
	var count int64
	for edge := range f.edges {
		if edge[1] == authorID {
			count++
		}
	}
	return count, nil
}

type fakeGroupRepo struct {
	groups []models.Group
	nextID uint
}

func (f *fakeGroupRepo) CreateGroup(group *models.Group) error {
	f.nextID++
	group.ID = f.nextID
	f.groups = append(f.groups, *group)
	return nil
}

func (f *fakeGroupRepo) GetGroupBySlug(slug string) (*models.Group, error) {
	for i := range f.groups {
		if f.groups[i].Slug == slug {
			return &f.groups[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroupRepo) GroupExists(id uint) (bool, error) {
	for i := range f.groups {
		if f.groups[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGroupRepo) SlugTaken(slug string) (bool, error) {
	_, err := f.GetGroupBySlug(slug)
	return err == nil, nil
}

type fakeCommentRepo struct {
	comments []models.Comment
	nextID   uint
}

func (f *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range f.comments {
		if comment.PostID == postID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.After(out[j].Created) })
	return out, nil
}

func (f *fakeCommentRepo) CountByPostID(postID uint) (int64, error) {
	comments, _ := f.GetCommentsByPostID(postID)
	return int64(len(comments)), nil
}

type fakePostRepo struct {
	posts   []models.Post
	nextID  uint
	users   *fakeUserRepo
	follows *fakeFollowRepo
}

func newFakePostRepo(users *fakeUserRepo, follows *fakeFollowRepo) *fakePostRepo {
	return &fakePostRepo{users: users, follows: follows}
}

func (f *fakePostRepo) CreatePost(post *models.Post) error {
	f.nextID++
	post.ID = f.nextID
	if author, ok := f.users.users[post.AuthorID]; ok {
		post.Author = *author
	}
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostRepo) GetPostByID(id uint) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			post := f.posts[i]
			return &post, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePostRepo) GetPostByAuthorAndID(username string, id uint) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id && f.posts[i].Author.Username == username {
			post := f.posts[i]
			return &post, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePostRepo) UpdatePost(post *models.Post) error {
	for i := range f.posts {
		if f.posts[i].ID == post.ID {
			f.posts[i] = *post
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePostRepo) page(matched []models.Post, page, pageSize int) ([]models.Post, int64, error) {
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].PubDate.Equal(matched[j].PubDate) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].PubDate.After(matched[j].PubDate)
	})
	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []models.Post{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakePostRepo) ListAll(page, pageSize int) ([]models.Post, int64, error) {
	return f.page(append([]models.Post(nil), f.posts...), page, pageSize)
}

func (f *fakePostRepo) ListByGroup(groupID uint, page, pageSize int) ([]models.Post, int64, error) {
	var matched []models.Post
	for _, post := range f.posts {
		if post.GroupID != nil && *post.GroupID == groupID {
			matched = append(matched, post)
		}
	}
	return f.page(matched, page, pageSize)
}

func (f *fakePostRepo) ListByAuthor(authorID uint, page, pageSize int) ([]models.Post, int64, error) {
	var matched []models.Post
	for _, post := range f.posts {
		if post.AuthorID == authorID {
			matched = append(matched, post)
		}
	}
	return f.page(matched, page, pageSize)
}

func (f *fakePostRepo) ListFollowing(userID uint, page, pageSize int) ([]models.Post, int64, error) {
	var matched []models.Post
	for _, post := range f.posts {
		if following, _ := f.follows.IsFollowing(userID, post.AuthorID); following {
			matched = append(matched, post)
		}
	}
	return f.page(matched, page, pageSize)
}

func (f *fakePostRepo) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	for _, post := range f.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

// fixture bundles the fakes behind one seedable state.
type fixture struct {
	users    *fakeUserRepo
	groups   *fakeGroupRepo
	posts    *fakePostRepo
	comments *fakeCommentRepo
	follows  *fakeFollowRepo
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	follows := newFakeFollowRepo()
	return &fixture{
		users:    users,
		groups:   &fakeGroupRepo{},
		posts:    newFakePostRepo(users, follows),
		comments: &fakeCommentRepo{},
		follows:  follows,
	}
}

func (f *fixture) addUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username}
	if err := f.users.CreateUser(user); err != nil {
		t.Fatalf("seeding user %s: %v", username, err)
	}
	return user
}

// request builds an echo context for a handler invocation. A nil user
// means an anonymous request.
func request(method, target string, form url.Values, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUserKey, user)
	}
	return c, rec
}
