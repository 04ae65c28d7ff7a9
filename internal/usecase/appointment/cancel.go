package appointment

import (
	"context"
	"fmt"

	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
	"github.com/perfectlysalon/admin-api/internal/notify"
)

type CancelAppointment struct {
	repo     domain.Repository
	gate     *domain.MutationGate
	notifier Notifier
	bus      Publisher
}

func NewCancelAppointment(
	repo domain.Repository,
	gate *domain.MutationGate,
	notifier Notifier,
	bus Publisher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		gate:     gate,
		notifier: notifier,
		bus:      bus,
	}
}

// Execute cancels a pending or confirmed appointment. The operator-side
// "are you sure" gate lives at the UI boundary; by the time this runs
// the cancellation is considered confirmed.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	if err := uc.gate.Acquire(); err != nil {
		return nil, err
	}
	defer uc.gate.Release()

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "appointment not found")
	}

	if err := domain.Cancel(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notify.Message{
		UserEmail:     ap.ClientEmail,
		AppointmentID: ap.ID,
		Title:         "Booking Cancelled",
		Description: fmt.Sprintf(
			"Your appointment for %s scheduled on %s at %s has been cancelled. Please contact us if you have any questions.",
			serviceSummary(ap.Services), ap.Date, ap.Time,
		),
		Type: ap.Status,
	})

	uc.bus.Publish(ctx, events.Event{
		Table:  "appointments",
		Action: events.ActionUpdate,
		ID:     ap.ID,
	})

	return ap, nil
}
