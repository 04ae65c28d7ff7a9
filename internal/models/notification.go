package models

import "time"

// Notification is addressed by email rather than account id: walk-in
// clients have no account row but still receive booking updates.
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserEmail     string `gorm:"size:100;index;not null" json:"user_email"`
	AppointmentID uint   `json:"appointment_id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Type mirrors the appointment status that produced the notification.
	Type string `gorm:"size:20" json:"type"`

	IsRead bool `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
