package appointment

import (
	"context"

	"github.com/perfectlysalon/admin-api/internal/models"
)

type Repository interface {
	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	ListAppointmentsByStatus(
		ctx context.Context,
		status Status,
	) ([]models.Appointment, error)

	ListAppointmentsByDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	// CountActiveAtSlot counts pending/confirmed appointments holding
	// the exact date+time pair. Terminal statuses release the slot.
	CountActiveAtSlot(
		ctx context.Context,
		date string,
		timeLabel string,
	) (int64, error)

	// -------- Product usage --------
	ListProductUsage(
		ctx context.Context,
		appointmentID uint,
	) ([]models.ProductUsage, error)

	ReplaceProductUsage(
		ctx context.Context,
		appointmentID uint,
		rows []models.ProductUsage,
	) error

	// DeductInventory subtracts qty from the item, clamping at zero.
	// It reports whether clamping occurred.
	DeductInventory(
		ctx context.Context,
		productID uint,
		qty int,
	) (bool, error)

	// -------- Catalog (read side of the booking wizard) --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetAddon(
		ctx context.Context,
		id uint,
	) (*models.ServiceAddon, error)

	// -------- Accounts (client auto-fill) --------
	GetAccount(
		ctx context.Context,
		id uint,
	) (*models.Account, error)
}
