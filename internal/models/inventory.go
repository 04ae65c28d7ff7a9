package models

import "time"

const DefaultMinStock = 10

type InventoryItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Category string `gorm:"size:50" json:"category"`

	Quantity int    `gorm:"default:0" json:"quantity"`
	Unit     string `gorm:"size:20" json:"unit"`

	MinStock int `gorm:"default:10" json:"min_stock"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LowStock is recomputed on read, never stored.
func (i InventoryItem) LowStock() bool {
	min := i.MinStock
	if min <= 0 {
		min = DefaultMinStock
	}
	return i.Quantity <= min
}
