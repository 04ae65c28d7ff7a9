package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a priced service or add-on copied by value into the
// appointment at booking time. Catalog edits never touch these snapshots.
type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	IsAddon  bool            `json:"is_addon,omitempty"`
}

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderNumber string `gorm:"size:40;uniqueIndex;not null" json:"order_number"`

	// Optional link to a registered account; walk-ins leave it nil.
	AccountID *uint `json:"account_id"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`
	ClientEmail string `gorm:"size:100" json:"client_email"`

	Stylist string `gorm:"size:100;default:'Unassigned'" json:"stylist"`

	Services []LineItem `gorm:"serializer:json;type:jsonb" json:"services"`

	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_amount"`

	// Date is a calendar date (2006-01-02); Time is the 12-hour slot
	// label shown to clients, e.g. "10:05 AM".
	Date string `gorm:"size:10;index;not null" json:"appointment_date"`
	Time string `gorm:"size:10;not null" json:"appointment_time"`

	PaymentMethod string `gorm:"size:20;default:'Cash'" json:"payment_method"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
