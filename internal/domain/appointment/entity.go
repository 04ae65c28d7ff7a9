package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/perfectlysalon/admin-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	return nil
}

// AutoCancel forces a confirmed appointment to cancelled and appends
// the justification to its notes. Existing notes are kept.
func AutoCancel(ap *models.Appointment, now, scheduled time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.Notes = strings.TrimRight(ap.Notes, "\n") + fmt.Sprintf(
		"\n\n[AUTO-CANCELLED on %s: Customer did not arrive within 1 hour of scheduled time %s]",
		now.Format("2006-01-02 15:04"),
		scheduled.Format("2006-01-02 15:04"),
	)
	return nil
}

// Total is the booking-time price: Σ(unit price × quantity) over every
// service and add-on line item. It is never recomputed after creation.
func Total(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

// NewOrderNumber builds the human-readable booking reference:
// ORD-<unix millis>-<random suffix>.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}
