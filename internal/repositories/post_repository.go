package repositories

import (
	"github.com/akarpov/litepost/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. All list
// methods are newest-first by pub_date, take a 1-based page, and return
// the page's posts together with the total match count. A page past the
// end yields an empty slice, not an error.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostByAuthorAndID(username string, id uint) (*models.Post, error)
	UpdatePost(post *models.Post) error
	ListAll(page, pageSize int) ([]models.Post, int64, error)
	ListByGroup(groupID uint, page, pageSize int) ([]models.Post, int64, error)
	ListByAuthor(authorID uint, page, pageSize int) ([]models.Post, int64, error)
	ListFollowing(userID uint, page, pageSize int) ([]models.Post, int64, error)
	CountByAuthor(authorID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID with its author and group preloaded
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostByAuthorAndID retrieves a post by its author's username and the
// post ID; gorm.ErrRecordNotFound when the pair doesn't match.
func (r *PostgresPostRepository) GetPostByAuthorAndID(username string, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Group").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", id, username).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost persists changes to an existing post
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *PostgresPostRepository) list(query *gorm.DB, page, pageSize int) ([]models.Post, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []models.Post
	err := query.
		Preload("Author").Preload("Group").
		Order("pub_date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListAll retrieves one page of all posts
func (r *PostgresPostRepository) ListAll(page, pageSize int) ([]models.Post, int64, error) {
	return r.list(r.db.Model(&models.Post{}), page, pageSize)
}

// ListByGroup retrieves one page of a group's posts
func (r *PostgresPostRepository) ListByGroup(groupID uint, page, pageSize int) ([]models.Post, int64, error) {
	return r.list(r.db.Model(&models.Post{}).Where("group_id = ?", groupID), page, pageSize)
}

// ListByAuthor retrieves one page of an author's posts
func (r *PostgresPostRepository) ListByAuthor(authorID uint, page, pageSize int) ([]models.Post, int64, error) {
	return r.list(r.db.Model(&models.Post{}).Where("author_id = ?", authorID), page, pageSize)
}

// ListFollowing retrieves one page of posts authored by anyone the given
// user follows
func (r *PostgresPostRepository) ListFollowing(userID uint, page, pageSize int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{}).Where("author_id IN (?)",
		r.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID),
	)
	return r.list(query, page, pageSize)
}

// CountByAuthor returns the total number of posts by an author
func (r *PostgresPostRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}
