package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceCategory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Slug         string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service is soft-deleted via IsActive: historical appointments embed
// line-item snapshots, so rows referenced by them are never removed.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CategoryID uint            `gorm:"index;not null" json:"category_id"`
	Category   ServiceCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	DurationMin int             `json:"duration_min"`

	DisplayOrder int  `gorm:"default:0" json:"display_order"`
	IsActive     bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceAddon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CategoryID uint            `gorm:"index;not null" json:"category_id"`
	Category   ServiceCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	Price decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`

	DisplayOrder int  `gorm:"default:0" json:"display_order"`
	IsActive     bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
