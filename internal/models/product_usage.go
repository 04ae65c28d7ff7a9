package models

import "time"

// ProductUsage links an appointment to an inventory item consumed by it.
// Rows are editable only while the appointment is pending or confirmed;
// inventory is deducted once, when the appointment completes.
type ProductUsage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	ProductID uint          `gorm:"not null" json:"product_id"`
	Product   InventoryItem `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`

	QuantityUsed int `gorm:"not null" json:"quantity_used"`

	CreatedAt time.Time `json:"created_at"`
}
