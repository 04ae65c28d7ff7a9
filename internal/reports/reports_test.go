package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
)

var reportNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

func completed(date string, amount float64, items ...models.LineItem) models.Appointment {
	return models.Appointment{
		OrderNumber:   "ORD-1700000000000-ABCDEF123",
		ClientName:    "Maria Santos",
		ClientEmail:   "maria@example.com",
		ClientPhone:   "09171234567",
		Stylist:       "Ana",
		Services:      items,
		TotalAmount:   decimal.NewFromFloat(amount),
		Date:          date,
		Time:          "1:05 PM",
		PaymentMethod: "Cash",
		Status:        "completed",
	}
}

func item(name string, price float64) models.LineItem {
	return models.LineItem{Name: name, Price: decimal.NewFromFloat(price), Quantity: 1}
}

func TestFilter(t *testing.T) {
	apps := []models.Appointment{
		completed("2025-03-10", 10), // today
		completed("2025-03-05", 20), // this week
		completed("2025-02-20", 30), // this month
		completed("2024-12-01", 40), // older
	}

	assert.Len(t, Filter(apps, WindowAll, "", "", reportNow), 4)
	assert.Len(t, Filter(apps, WindowToday, "", "", reportNow), 1)
	assert.Len(t, Filter(apps, WindowWeek, "", "", reportNow), 2)
	assert.Len(t, Filter(apps, WindowMonth, "", "", reportNow), 3)
	assert.Len(t, Filter(apps, WindowCustom, "2025-02-01", "2025-03-06", reportNow), 2)
}

func TestTotalRevenueAndAverage(t *testing.T) {
	apps := []models.Appointment{
		completed("2025-03-10", 100),
		completed("2025-03-10", 50.50),
	}

	assert.True(t, TotalRevenue(apps).Equal(decimal.NewFromFloat(150.50)))
	assert.True(t, AverageTransaction(apps).Equal(decimal.NewFromFloat(75.25)))
}

func TestAverageTransaction_Empty(t *testing.T) {
	assert.True(t, AverageTransaction(nil).IsZero())
}

func TestServiceStats_CountsPerAppearance(t *testing.T) {
	apps := []models.Appointment{
		completed("2025-03-10", 0, item("Haircut", 25), item("Hair Color", 80)),
		completed("2025-03-10", 0, item("Haircut", 25)),
	}

	stats := ServiceStats(apps)
	require.Len(t, stats, 2)

	// Sorted by revenue descending: Hair Color 80 > Haircut 50.
	assert.Equal(t, "Hair Color", stats[0].Name)
	assert.Equal(t, 1, stats[0].Count)
	assert.Equal(t, "Haircut", stats[1].Name)
	assert.Equal(t, 2, stats[1].Count)
	assert.True(t, stats[1].Revenue.Equal(decimal.NewFromInt(50)))
}

func TestServiceStats_SkipsUnnamedItems(t *testing.T) {
	apps := []models.Appointment{
		completed("2025-03-10", 0, models.LineItem{Name: "", Price: decimal.NewFromInt(5)}),
	}
	assert.Empty(t, ServiceStats(apps))
}

func TestPaymentBreakdown(t *testing.T) {
	cash := completed("2025-03-10", 100)
	card := completed("2025-03-10", 40)
	card.PaymentMethod = "Card"
	unknown := completed("2025-03-10", 5)
	unknown.PaymentMethod = ""

	out := PaymentBreakdown([]models.Appointment{cash, card, unknown})
	assert.True(t, out["Cash"].Equal(decimal.NewFromInt(100)))
	assert.True(t, out["Card"].Equal(decimal.NewFromInt(40)))
	assert.True(t, out["Unknown"].Equal(decimal.NewFromInt(5)))
}

func TestStylistBreakdown(t *testing.T) {
	a := completed("2025-03-10", 100)
	b := completed("2025-03-10", 60)
	b.Stylist = "Bea"
	c := completed("2025-03-10", 10)
	c.Stylist = ""

	stats := StylistBreakdown([]models.Appointment{a, b, c})
	require.Len(t, stats, 3)
	assert.Equal(t, "Ana", stats[0].Stylist)
	assert.Equal(t, "Bea", stats[1].Stylist)
	assert.Equal(t, "Unassigned", stats[2].Stylist)
}

// --------------------------------------------------
// CSV export
// --------------------------------------------------

func TestWriteCSV(t *testing.T) {
	ap := completed("2025-03-10", 105, item("Haircut", 25), item("Hair Color", 80))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.Appointment{ap}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"Order Number", "Date", "Time", "Client", "Email",
		"Phone", "Stylist", "Services", "Payment Method", "Amount",
	}, records[0])

	row := records[1]
	assert.Equal(t, "ORD-1700000000000-ABCDEF123", row[0])
	assert.Equal(t, "Mar 10, 2025", row[1])
	assert.Equal(t, "1:05 PM", row[2])
	assert.Equal(t, "Haircut; Hair Color", row[7])
	assert.Equal(t, "105.00", row[9])
}

func TestWriteCSV_NoData(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeNoData, httperr.BusinessCode(err))
	assert.Zero(t, buf.Len())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "sales-report-2025-03-10.csv", Filename(reportNow))
}

// --------------------------------------------------
// Dashboard
// --------------------------------------------------

func TestSummarize(t *testing.T) {
	done := completed("2025-03-10", 100)
	pending := completed("2025-03-10", 50)
	pending.Status = "pending"
	pending.Time = "5:00 PM"
	cancelled := completed("2025-03-10", 30)
	cancelled.Status = "cancelled"

	inventory := []models.InventoryItem{
		{ID: 1, Name: "Shampoo", Quantity: 3, MinStock: 10},
		{ID: 2, Name: "Conditioner", Quantity: 50, MinStock: 10},
	}

	s := Summarize([]models.Appointment{done, pending, cancelled}, inventory, reportNow)

	assert.True(t, s.Revenue.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 3, s.Appointments)
	assert.Equal(t, 1, s.Remaining)

	require.Len(t, s.LowStock, 1)
	assert.Equal(t, "Shampoo", s.LowStock[0].Name)

	// The cancelled booking is hidden; the rest sort by slot time.
	require.Len(t, s.UpcomingToday, 2)
	assert.Equal(t, "1:05 PM", s.UpcomingToday[0].Time)
	assert.Equal(t, "5:00 PM", s.UpcomingToday[1].Time)
}

func TestNextAppointments(t *testing.T) {
	mk := func(timeLabel, status string) models.Appointment {
		ap := completed("2025-03-10", 0)
		ap.Time = timeLabel
		ap.Status = status
		return ap
	}

	apps := []models.Appointment{
		mk("4:00 PM", "pending"),
		mk("1:00 PM", "confirmed"),
		mk("2:00 PM", "cancelled"), // excluded
		mk("10:00 AM", "pending"),  // already past at noon
		mk("whenever", "pending"),  // unparseable, skipped
	}

	next := NextAppointments(apps, reportNow, 5)
	require.Len(t, next, 2)
	assert.Equal(t, "1:00 PM", next[0].Time)
	assert.Equal(t, "4:00 PM", next[1].Time)
}

func TestNextAppointments_Limit(t *testing.T) {
	var apps []models.Appointment
	for _, label := range []string{"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM", "6:00 PM"} {
		ap := completed("2025-03-10", 0)
		ap.Time = label
		ap.Status = "pending"
		apps = append(apps, ap)
	}

	next := NextAppointments(apps, reportNow, 5)
	assert.Len(t, next, 5)
	assert.Equal(t, "5:00 PM", next[4].Time)
}
