package models

import "time"

// VerificationCode rows are single-use. Several unconsumed codes may
// coexist for one email; lookups always take the most recent match.
type VerificationCode struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email string `gorm:"size:100;index;not null" json:"email"`
	Code  string `gorm:"size:6;not null" json:"code"`

	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	Verified   bool       `gorm:"default:false" json:"verified"`
	VerifiedAt *time.Time `json:"verified_at"`

	CreatedAt time.Time `json:"created_at"`
}
