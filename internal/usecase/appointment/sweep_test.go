package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfectlysalon/admin-api/internal/clock"
	"github.com/perfectlysalon/admin-api/internal/models"
)

func newSweeper(repo *mockRepo, notifier *mockNotifier, bus *mockBus, now time.Time) *Sweeper {
	return NewSweeper(repo, notifier, bus, clock.Fixed(now), discardLogger(), time.Minute, 0)
}

func seedScheduled(repo *mockRepo, status, date, timeLabel string) *models.Appointment {
	ap := &models.Appointment{
		ClientEmail: "client@example.com",
		Date:        date,
		Time:        timeLabel,
		Status:      status,
		Notes:       "Payment Method: Cash",
	}
	_ = repo.CreateAppointment(context.Background(), ap)
	return ap
}

func TestSweepOnce_CancelsOverdueConfirmed(t *testing.T) {
	repo := newMockRepo()
	notifier := &mockNotifier{}
	bus := &mockBus{}

	// Scheduled 2:00 PM, now 3:30 PM: past the one-hour grace.
	ap := seedScheduled(repo, "confirmed", "2025-03-10", "2:00 PM")
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)

	cancelled := newSweeper(repo, notifier, bus, now).SweepOnce(context.Background())

	assert.Equal(t, 1, cancelled)
	got := repo.appointments[ap.ID]
	assert.Equal(t, "cancelled", got.Status)
	assert.Contains(t, got.Notes, "AUTO-CANCELLED")
	assert.Contains(t, got.Notes, "Payment Method: Cash")

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Appointment Auto-Cancelled", notifier.messages[0].Title)
	require.Len(t, bus.events, 1)
}

func TestSweepOnce_WithinGraceUntouched(t *testing.T) {
	repo := newMockRepo()

	// Only 30 minutes past the scheduled time.
	ap := seedScheduled(repo, "confirmed", "2025-03-10", "2:00 PM")
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)

	cancelled := newSweeper(repo, &mockNotifier{}, &mockBus{}, now).SweepOnce(context.Background())

	assert.Equal(t, 0, cancelled)
	assert.Equal(t, "confirmed", repo.appointments[ap.ID].Status)
}

func TestSweepOnce_ExactlyAtGraceUntouched(t *testing.T) {
	repo := newMockRepo()

	ap := seedScheduled(repo, "confirmed", "2025-03-10", "2:00 PM")
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.Local)

	cancelled := newSweeper(repo, &mockNotifier{}, &mockBus{}, now).SweepOnce(context.Background())

	assert.Equal(t, 0, cancelled)
	assert.Equal(t, "confirmed", repo.appointments[ap.ID].Status)
}

func TestSweepOnce_PendingNeverSwept(t *testing.T) {
	repo := newMockRepo()

	// Days overdue, but never confirmed.
	ap := seedScheduled(repo, "pending", "2025-03-01", "2:00 PM")
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)

	cancelled := newSweeper(repo, &mockNotifier{}, &mockBus{}, now).SweepOnce(context.Background())

	assert.Equal(t, 0, cancelled)
	assert.Equal(t, "pending", repo.appointments[ap.ID].Status)
}

func TestSweepOnce_MalformedScheduleSkipped(t *testing.T) {
	repo := newMockRepo()
	notifier := &mockNotifier{}

	bad := seedScheduled(repo, "confirmed", "2025-03-10", "whenever")
	overdue := seedScheduled(repo, "confirmed", "2025-03-10", "10:00 AM")
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local)

	cancelled := newSweeper(repo, notifier, &mockBus{}, now).SweepOnce(context.Background())

	// The bad row is skipped, the good one still sweeps.
	assert.Equal(t, 1, cancelled)
	assert.Equal(t, "confirmed", repo.appointments[bad.ID].Status)
	assert.Equal(t, "cancelled", repo.appointments[overdue.ID].Status)
}

func TestSweepOnce_TwelveHourEdges(t *testing.T) {
	repo := newMockRepo()

	// "12:00 PM" is noon; at 12:30 PM it is within grace.
	noon := seedScheduled(repo, "confirmed", "2025-03-10", "12:00 PM")
	now := time.Date(2025, 3, 10, 12, 30, 0, 0, time.Local)

	cancelled := newSweeper(repo, &mockNotifier{}, &mockBus{}, now).SweepOnce(context.Background())
	assert.Equal(t, 0, cancelled)
	assert.Equal(t, "confirmed", repo.appointments[noon.ID].Status)

	// Just past 1:00 PM the grace period has elapsed.
	now = time.Date(2025, 3, 10, 13, 0, 1, 0, time.Local)
	cancelled = newSweeper(repo, &mockNotifier{}, &mockBus{}, now).SweepOnce(context.Background())
	assert.Equal(t, 1, cancelled)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := newMockRepo()
	s := NewSweeper(repo, &mockNotifier{}, &mockBus{}, clock.System(), discardLogger(), time.Hour, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
