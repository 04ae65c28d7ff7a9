package appointment

import (
	"context"

	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
)

type ProductUsageInput struct {
	ProductID    uint
	QuantityUsed int
}

type SetAppointmentProducts struct {
	repo domain.Repository
	bus  Publisher
}

func NewSetAppointmentProducts(repo domain.Repository, bus Publisher) *SetAppointmentProducts {
	return &SetAppointmentProducts{repo: repo, bus: bus}
}

// Execute replaces the appointment's product-usage set. Only allowed
// while the appointment is pending or confirmed; once completed or
// cancelled the consumption record is frozen.
func (uc *SetAppointmentProducts) Execute(
	ctx context.Context,
	appointmentID uint,
	inputs []ProductUsageInput,
) ([]models.ProductUsage, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "appointment not found")
	}

	if !domain.IsActive(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeInvalidState,
			"product usage cannot change after the appointment is completed or cancelled",
		)
	}

	rows := make([]models.ProductUsage, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID == 0 || in.QuantityUsed <= 0 {
			continue
		}
		rows = append(rows, models.ProductUsage{
			AppointmentID: ap.ID,
			ProductID:     in.ProductID,
			QuantityUsed:  in.QuantityUsed,
		})
	}

	if err := uc.repo.ReplaceProductUsage(ctx, ap.ID, rows); err != nil {
		return nil, err
	}

	uc.bus.Publish(ctx, events.Event{
		Table:  "appointment_products",
		Action: events.ActionUpdate,
		ID:     ap.ID,
	})

	return uc.repo.ListProductUsage(ctx, ap.ID)
}
