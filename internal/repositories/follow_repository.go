package repositories

import (
	"errors"

	"github.com/akarpov/litepost/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow-edge data operations.
// CreateFollow and DeleteFollow are idempotent: creating an edge that
// already exists or deleting one that doesn't is not an error.
type FollowRepository interface {
	CreateFollow(userID, authorID uint) error
	DeleteFollow(userID, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
	CountFollowers(authorID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the (user, author) edge if it doesn't exist yet.
// The composite unique index makes concurrent duplicate requests collapse
// into a single edge; the duplicate-key error is swallowed.
func (r *PostgresFollowRepository) CreateFollow(userID, authorID uint) error {
	follow := models.Follow{UserID: &userID, AuthorID: &authorID}
	err := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&follow).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// DeleteFollow removes the (user, author) edge if present
func (r *PostgresFollowRepository) DeleteFollow(userID, authorID uint) error {
	return r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether the (user, author) edge exists
func (r *PostgresFollowRepository) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountFollowers returns how many users follow the given author
func (r *PostgresFollowRepository) CountFollowers(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}
