package models

import "time"

type Announcement struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title    string `gorm:"size:150;not null" json:"title"`
	Message  string `gorm:"type:text;not null" json:"message"`
	Priority string `gorm:"size:20;default:'notices'" json:"priority"`
	Author   string `gorm:"size:100" json:"author"`

	ValidUntil *time.Time `json:"valid_until"`
	Highlight  string     `gorm:"size:255" json:"highlight"`

	CreatedAt time.Time `json:"created_at"`
}
