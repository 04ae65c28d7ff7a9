package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/perfectlysalon/admin-api/internal/clock"
	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/notify"
)

// GracePeriod is how long past the scheduled time a confirmed
// appointment may sit before the sweep treats it as a no-show.
const GracePeriod = time.Hour

// Sweeper periodically cancels confirmed appointments whose scheduled
// time has passed by more than the grace period. Pending appointments
// are never touched: a booking that was never confirmed is not a
// no-show under this policy.
type Sweeper struct {
	repo     domain.Repository
	notifier Notifier
	bus      Publisher
	clock    clock.Clock
	log      *slog.Logger

	interval     time.Duration
	initialDelay time.Duration
}

func NewSweeper(
	repo domain.Repository,
	notifier Notifier,
	bus Publisher,
	clk clock.Clock,
	log *slog.Logger,
	interval time.Duration,
	initialDelay time.Duration,
) *Sweeper {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Sweeper{
		repo:         repo,
		notifier:     notifier,
		bus:          bus,
		clock:        clk,
		log:          log,
		interval:     interval,
		initialDelay: initialDelay,
	}
}

// Run blocks until ctx is cancelled: one delayed initial pass, then a
// fixed tick.
func (s *Sweeper) Run(ctx context.Context) {
	if s.initialDelay > 0 {
		select {
		case <-time.After(s.initialDelay):
		case <-ctx.Done():
			return
		}
	}
	s.SweepOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// SweepOnce walks every confirmed appointment once. Per-row failures
// are logged and skipped; one bad row never halts the rest. Returns
// how many appointments were auto-cancelled.
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	apps, err := s.repo.ListAppointmentsByStatus(ctx, domain.StatusConfirmed)
	if err != nil {
		s.log.Error("auto-cancel sweep: listing confirmed appointments failed", "err", err)
		return 0
	}

	now := s.clock.Now()
	cancelled := 0

	for i := range apps {
		ap := &apps[i]

		scheduled, err := domain.ParseDateTime(ap.Date, ap.Time)
		if err != nil {
			s.log.Error("auto-cancel sweep: unparseable schedule, skipping",
				"appointment_id", ap.ID,
				"date", ap.Date,
				"time", ap.Time,
				"err", err,
			)
			continue
		}

		if !now.After(scheduled.Add(GracePeriod)) {
			continue
		}

		if err := domain.AutoCancel(ap, now, scheduled); err != nil {
			s.log.Error("auto-cancel sweep: transition rejected",
				"appointment_id", ap.ID, "err", err)
			continue
		}

		if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
			s.log.Error("auto-cancel sweep: update failed",
				"appointment_id", ap.ID, "err", err)
			continue
		}

		cancelled++
		s.log.Info("auto-cancelled overdue appointment",
			"appointment_id", ap.ID,
			"order_number", ap.OrderNumber,
			"scheduled", scheduled,
		)

		s.notifier.Dispatch(notify.Message{
			UserEmail:     ap.ClientEmail,
			AppointmentID: ap.ID,
			Title:         "Appointment Auto-Cancelled",
			Description: fmt.Sprintf(
				"Your appointment scheduled for %s at %s was automatically cancelled due to no-show. Please contact us to reschedule.",
				ap.Date, ap.Time,
			),
			Type: ap.Status,
		})

		s.bus.Publish(ctx, events.Event{
			Table:  "appointments",
			Action: events.ActionUpdate,
			ID:     ap.ID,
		})
	}

	return cancelled
}
