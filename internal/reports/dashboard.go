package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/models"
)

// Today-scoped dashboard derivations. Like the report aggregates these
// are recomputed wholesale on every relevant event.

type DaySummary struct {
	Revenue       decimal.Decimal        `json:"revenue"`
	Appointments  int                    `json:"appointments"`
	Remaining     int                    `json:"remaining"`
	LowStock      []models.InventoryItem `json:"low_stock"`
	UpcomingToday []models.Appointment   `json:"upcoming_today"`
}

// Summarize builds the dashboard view from today's appointments and the
// full inventory.
func Summarize(todays []models.Appointment, inventory []models.InventoryItem, now time.Time) DaySummary {
	s := DaySummary{
		Revenue:  decimal.Zero,
		LowStock: []models.InventoryItem{},
	}

	for _, ap := range todays {
		s.Appointments++
		switch domain.Status(ap.Status) {
		case domain.StatusCompleted:
			s.Revenue = s.Revenue.Add(ap.TotalAmount)
		case domain.StatusPending, domain.StatusConfirmed:
			s.Remaining++
		}
	}

	for _, item := range inventory {
		if item.LowStock() {
			s.LowStock = append(s.LowStock, item)
		}
	}

	s.UpcomingToday = NextAppointments(todays, now, 5)
	return s
}

// NextAppointments picks the next n non-cancelled appointments at or
// after now, ordered by slot time. Rows whose schedule fails to parse
// are skipped.
func NextAppointments(apps []models.Appointment, now time.Time, n int) []models.Appointment {
	type timed struct {
		at time.Time
		ap models.Appointment
	}

	upcoming := make([]timed, 0, len(apps))
	for _, ap := range apps {
		if domain.Status(ap.Status) == domain.StatusCancelled {
			continue
		}
		at, err := domain.ParseDateTime(ap.Date, ap.Time)
		if err != nil {
			continue
		}
		if at.Before(now) {
			continue
		}
		upcoming = append(upcoming, timed{at: at, ap: ap})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].at.Before(upcoming[j].at)
	})

	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}

	out := make([]models.Appointment, 0, len(upcoming))
	for _, t := range upcoming {
		out = append(out, t.ap)
	}
	return out
}
