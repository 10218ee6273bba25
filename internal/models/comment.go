package models

import "time"

// Comment belongs to a post and an author; deleting either deletes the
// comment. Ordered newest-first by Created.
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	PostID   uint      `json:"post_id" gorm:"not null;index"`
	Post     Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID uint      `json:"author_id" gorm:"not null;index"`
	Author   User      `json:"author" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Created  time.Time `json:"created"`
}
