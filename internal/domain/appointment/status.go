package appointment

import "github.com/perfectlysalon/admin-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Bookings move forward only: pending → confirmed → completed, with
// cancellation allowed from pending or confirmed. Completed and
// cancelled are terminal.

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// Active statuses occupy their time slot; terminal ones release it.
func IsActive(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

func InitialStatus() Status {
	return StatusPending
}
