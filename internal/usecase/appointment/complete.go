package appointment

import (
	"context"
	"fmt"
	"log/slog"

	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
	"github.com/perfectlysalon/admin-api/internal/notify"
)

type CompleteAppointment struct {
	repo     domain.Repository
	gate     *domain.MutationGate
	notifier Notifier
	bus      Publisher
	log      *slog.Logger
}

func NewCompleteAppointment(
	repo domain.Repository,
	gate *domain.MutationGate,
	notifier Notifier,
	bus Publisher,
	log *slog.Logger,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:     repo,
		gate:     gate,
		notifier: notifier,
		bus:      bus,
		log:      log,
	}
}

// Execute finishes a confirmed appointment. This is the only moment the
// booking flow mutates inventory: each linked product-usage row deducts
// its quantity exactly once. Completing without any usage rows requires
// the operator's explicit acknowledgment via allowNoProducts.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	allowNoProducts bool,
) (*models.Appointment, error) {

	if err := uc.gate.Acquire(); err != nil {
		return nil, err
	}
	defer uc.gate.Release()

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "appointment not found")
	}

	usages, err := uc.repo.ListProductUsage(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	if len(usages) == 0 && !allowNoProducts {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeNoProducts,
			"no products are assigned to this appointment; inventory will not be deducted",
		)
	}

	if err := domain.Complete(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// The state machine rejects a second completion, so this runs at
	// most once per appointment. A per-item failure is logged and the
	// rest of the deductions still apply.
	for _, usage := range usages {
		clamped, err := uc.repo.DeductInventory(ctx, usage.ProductID, usage.QuantityUsed)
		if err != nil {
			uc.log.Error("inventory deduction failed",
				"appointment_id", ap.ID,
				"product_id", usage.ProductID,
				"err", err,
			)
			continue
		}
		if clamped {
			uc.log.Warn("inventory deduction clamped at zero",
				"appointment_id", ap.ID,
				"product_id", usage.ProductID,
				"quantity_used", usage.QuantityUsed,
			)
		}
		uc.bus.Publish(ctx, events.Event{
			Table:  "inventory",
			Action: events.ActionUpdate,
			ID:     usage.ProductID,
		})
	}

	uc.notifier.Dispatch(notify.Message{
		UserEmail:     ap.ClientEmail,
		AppointmentID: ap.ID,
		Title:         "Service Completed!",
		Description: fmt.Sprintf(
			"Thank you for visiting us! Your %s appointment on %s has been completed. We hope to see you again soon!",
			serviceSummary(ap.Services), ap.Date,
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
