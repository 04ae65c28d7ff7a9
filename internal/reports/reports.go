package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perfectlysalon/admin-api/internal/models"
)

// Everything in this package is a pure function of the completed
// appointments handed in: no hidden state, safe to recompute on every
// realtime event. Appointments with empty or malformed services are
// treated as zero line items, never as an error.

type Window string

const (
	WindowAll    Window = "all"
	WindowToday  Window = "today"
	WindowWeek   Window = "week"
	WindowMonth  Window = "month"
	WindowCustom Window = "custom"
)

// Filter narrows appointments to the requested rolling window or
// explicit range, judged against the stored calendar date.
func Filter(apps []models.Appointment, w Window, from, to string, now time.Time) []models.Appointment {
	var lower, upper string

	switch w {
	case WindowToday:
		lower = now.Format("2006-01-02")
		upper = lower
	case WindowWeek:
		lower = now.AddDate(0, 0, -7).Format("2006-01-02")
		upper = now.Format("2006-01-02")
	case WindowMonth:
		lower = now.AddDate(0, -1, 0).Format("2006-01-02")
		upper = now.Format("2006-01-02")
	case WindowCustom:
		lower = from
		upper = to
	default:
		return apps
	}

	out := make([]models.Appointment, 0, len(apps))
	for _, ap := range apps {
		if lower != "" && ap.Date < lower {
			continue
		}
		if upper != "" && ap.Date > upper {
			continue
		}
		out = append(out, ap)
	}
	return out
}

func TotalRevenue(apps []models.Appointment) decimal.Decimal {
	total := decimal.Zero
	for _, ap := range apps {
		total = total.Add(ap.TotalAmount)
	}
	return total
}

// AverageTransaction is zero for an empty set, not a division error.
func AverageTransaction(apps []models.Appointment) decimal.Decimal {
	if len(apps) == 0 {
		return decimal.Zero
	}
	return TotalRevenue(apps).DivRound(decimal.NewFromInt(int64(len(apps))), 2)
}

type ServiceStat struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ServiceStats counts one booking per line-item appearance and credits
// the item's unit price, sorted by revenue descending.
func ServiceStats(apps []models.Appointment) []ServiceStat {
	byName := map[string]*ServiceStat{}

	for _, ap := range apps {
		for _, item := range ap.Services {
			if item.Name == "" {
				continue
			}
			st, ok := byName[item.Name]
			if !ok {
				st = &ServiceStat{Name: item.Name, Revenue: decimal.Zero}
				byName[item.Name] = st
			}
			st.Count++
			st.Revenue = st.Revenue.Add(item.Price)
		}
	}

	stats := make([]ServiceStat, 0, len(byName))
	for _, st := range byName {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Revenue.GreaterThan(stats[j].Revenue)
	})
	return stats
}

// PaymentBreakdown sums revenue per payment method.
func PaymentBreakdown(apps []models.Appointment) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for _, ap := range apps {
		method := ap.PaymentMethod
		if method == "" {
			method = "Unknown"
		}
		out[method] = out[method].Add(ap.TotalAmount)
	}
	return out
}

type StylistStat struct {
	Stylist string          `json:"stylist"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

func StylistBreakdown(apps []models.Appointment) []StylistStat {
	byName := map[string]*StylistStat{}

	for _, ap := range apps {
		stylist := ap.Stylist
		if stylist == "" {
			stylist = "Unassigned"
		}
		st, ok := byName[stylist]
		if !ok {
			st = &StylistStat{Stylist: stylist, Revenue: decimal.Zero}
			byName[stylist] = st
		}
		st.Count++
		st.Revenue = st.Revenue.Add(ap.TotalAmount)
	}

	stats := make([]StylistStat, 0, len(byName))
	for _, st := range byName {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Revenue.GreaterThan(stats[j].Revenue)
	})
	return stats
}
