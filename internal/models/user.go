package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Email        string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        *string `gorm:"size:20;uniqueIndex" json:"phone,omitempty"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Role         string  `gorm:"size:20;default:'user'" json:"role"`

	Status    string `gorm:"size:20;default:'active'" json:"status"`
	Warnings  int    `gorm:"default:0" json:"warnings"`
	IsDeleted bool   `gorm:"default:false;index" json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanSignIn reports whether the account may hold a session.
func (u *User) CanSignIn() bool {
	return !u.IsDeleted && u.Status != UserStatusSuspended
}
