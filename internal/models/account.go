package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

type Account struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`

	FullName      string `gorm:"size:100;not null" json:"full_name"`
	ContactNumber string `gorm:"size:20" json:"contact_number"`
	Age           int    `json:"age"`

	Role string `gorm:"size:20;default:'client'" json:"role"`

	Verified  bool `gorm:"default:false" json:"verified"`
	IsBlocked bool `gorm:"default:false" json:"is_blocked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
