package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/perfectlysalon/admin-api/internal/models"
)

type AppointmentListDTO struct {
	ID            uint              `json:"id"`
	OrderNumber   string            `json:"order_number"`
	ClientName    string            `json:"client_name"`
	ClientPhone   string            `json:"client_phone"`
	ClientEmail   string            `json:"client_email"`
	Stylist       string            `json:"stylist"`
	Services      []models.LineItem `json:"services"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Date          string            `json:"appointment_date"`
	Time          string            `json:"appointment_time"`
	PaymentMethod string            `json:"payment_method"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes"`
	CreatedAt     time.Time         `json:"created_at"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:            ap.ID,
		OrderNumber:   ap.OrderNumber,
		ClientName:    ap.ClientName,
		ClientPhone:   ap.ClientPhone,
		ClientEmail:   ap.ClientEmail,
		Stylist:       ap.Stylist,
		Services:      ap.Services,
		TotalAmount:   ap.TotalAmount,
		Date:          ap.Date,
		Time:          ap.Time,
		PaymentMethod: ap.PaymentMethod,
		Status:        ap.Status,
		Notes:         ap.Notes,
		CreatedAt:     ap.CreatedAt,
	}
}
