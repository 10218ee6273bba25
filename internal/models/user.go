package models

import "time"

// User is an author identity. Accounts are created through the auth
// endpoints and are never deleted by this service.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserCompact is the author shape embedded in feed and post responses.
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ToCompact converts a User to its compact representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Username: u.Username,
	}
}

// SignupRequest defines the request body for creating a new account
type SignupRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=2,max=150,alphanum"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for logging in
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}
