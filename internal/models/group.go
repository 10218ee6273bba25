package models

// Group is a named category posts can be filed under. Groups are created
// by an admin through the group endpoint; deleting one leaves its posts
// group-less rather than deleting them.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
}
