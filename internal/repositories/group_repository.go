package repositories

import (
	"github.com/akarpov/litepost/backend/internal/models"
	"gorm.io/gorm"
)

// GroupRepository defines the interface for group data operations
type GroupRepository interface {
	CreateGroup(group *models.Group) error
	GetGroupBySlug(slug string) (*models.Group, error)
	GroupExists(id uint) (bool, error)
	SlugTaken(slug string) (bool, error)
}

// PostgresGroupRepository implements GroupRepository for PostgreSQL
type PostgresGroupRepository struct {
	db *gorm.DB
}

// NewPostgresGroupRepository creates a new PostgresGroupRepository
func NewPostgresGroupRepository(db *gorm.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

// CreateGroup creates a new group in PostgreSQL. The unique index on slug
// backstops the handler-level check under concurrent creates.
func (r *PostgresGroupRepository) CreateGroup(group *models.Group) error {
	return r.db.Create(group).Error
}

// GetGroupBySlug retrieves a group by its slug from PostgreSQL
func (r *PostgresGroupRepository) GetGroupBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// GroupExists reports whether a group with the given ID exists
func (r *PostgresGroupRepository) GroupExists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Group{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SlugTaken reports whether a group with the given slug exists
func (r *PostgresGroupRepository) SlugTaken(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Group{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
