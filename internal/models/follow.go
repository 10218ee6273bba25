package models

import "time"

// Follow is a directed edge: UserID follows AuthorID. The pair is unique;
// a second identical follow request is a no-op. The foreign keys are
// nullable and set to NULL if the referenced user is ever deleted, which
// soft-orphans the edge instead of cascading.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index;uniqueIndex:idx_follow_user_author"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	AuthorID  *uint     `json:"author_id" gorm:"index;uniqueIndex:idx_follow_user_author"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `json:"created_at"`
}
