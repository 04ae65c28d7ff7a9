package appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
)

func TestConfirm(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Confirm(ap))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
}

func TestConfirm_RejectsNonPending(t *testing.T) {
	for _, status := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}
		err := Confirm(ap)
		require.Error(t, err)
		assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(err))
		assert.Equal(t, string(status), ap.Status)
	}
}

func TestCancel_FromPendingAndConfirmed(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusConfirmed} {
		ap := &models.Appointment{Status: string(status)}
		require.NoError(t, Cancel(ap))
		assert.Equal(t, string(StatusCancelled), ap.Status)
	}
}

func TestCancel_RejectsTerminal(t *testing.T) {
	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}
		require.Error(t, Cancel(ap))
	}
}

func TestComplete_OnlyFromConfirmed(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusConfirmed)}
	require.NoError(t, Complete(ap))
	assert.Equal(t, string(StatusCompleted), ap.Status)

	for _, status := range []Status{StatusPending, StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}
		require.Error(t, Complete(ap))
	}
}

func TestAutoCancel_AppendsNote(t *testing.T) {
	ap := &models.Appointment{
		Status: string(StatusConfirmed),
		Notes:  "Payment Method: Cash",
	}

	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)
	scheduled := time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local)

	require.NoError(t, AutoCancel(ap, now, scheduled))

	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.True(t, strings.HasPrefix(ap.Notes, "Payment Method: Cash"))
	assert.Contains(t, ap.Notes, "[AUTO-CANCELLED on 2025-03-10 15:30")
	assert.Contains(t, ap.Notes, "Customer did not arrive within 1 hour of scheduled time 2025-03-10 14:00")
}

func TestAutoCancel_RejectsCompleted(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusCompleted), Notes: "done"}
	require.Error(t, AutoCancel(ap, time.Now(), time.Now()))
	assert.Equal(t, "done", ap.Notes)
}

func TestTotal(t *testing.T) {
	items := []models.LineItem{
		{Name: "Haircut", Price: decimal.NewFromFloat(25.50), Quantity: 1},
		{Name: "Hair Spa", Price: decimal.NewFromFloat(40), Quantity: 2},
		{Name: "Scalp Massage", Price: decimal.NewFromFloat(10), Quantity: 0, IsAddon: true},
	}

	// Zero quantity counts as one.
	assert.True(t, Total(items).Equal(decimal.NewFromFloat(115.50)))
}

func TestTotal_Empty(t *testing.T) {
	assert.True(t, Total(nil).IsZero())
}

func TestNewOrderNumber(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	order := NewOrderNumber(now)

	require.True(t, strings.HasPrefix(order, "ORD-1700000000000-"))
	suffix := strings.TrimPrefix(order, "ORD-1700000000000-")
	assert.Len(t, suffix, 9)
	assert.Equal(t, strings.ToUpper(suffix), suffix)
}

func TestNewOrderNumber_Unique(t *testing.T) {
	now := time.Now()
	assert.NotEqual(t, NewOrderNumber(now), NewOrderNumber(now))
}
