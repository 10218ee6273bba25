package models

import (
	"path"
	"strings"
	"time"
)

// Post is a blog entry. PubDate is set at creation and refreshed when the
// author edits the post; feeds order by it, newest first. The group
// reference is optional and survives group deletion as NULL, while posts
// are dropped together with their author.
type Post struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"index"`
	AuthorID uint      `json:"author_id" gorm:"not null;index"`
	Author   User      `json:"author" gorm:"constraint:OnDelete:CASCADE"`
	GroupID  *uint     `json:"group_id,omitempty" gorm:"index"`
	Group    *Group    `json:"group,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Image    string    `json:"image,omitempty"`
}

// ImageDisplayName returns the human part of the stored image name,
// i.e. the original base name without the uuid suffix the image store
// appends ("posts/cat_9f06....jpg" -> "cat").
func (p *Post) ImageDisplayName() string {
	if p.Image == "" {
		return ""
	}
	name := path.Base(p.Image)
	if i := strings.Index(name, "_"); i > 0 {
		return name[:i]
	}
	return strings.TrimSuffix(name, path.Ext(name))
}
