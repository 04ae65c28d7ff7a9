package reports

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
)

// The export's column order is fixed; downstream spreadsheets rely on it.
var csvHeader = []string{
	"Order Number", "Date", "Time", "Client", "Email",
	"Phone", "Stylist", "Services", "Payment Method", "Amount",
}

// Filename returns the export name for the given day:
// sales-report-<ISO date>.csv.
func Filename(now time.Time) string {
	return "sales-report-" + now.Format("2006-01-02") + ".csv"
}

func formatDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("Jan 2, 2006")
}

// WriteCSV renders the filtered report. An empty set is rejected with a
// no-data error instead of producing an empty file.
func WriteCSV(w io.Writer, apps []models.Appointment) error {
	if len(apps) == 0 {
		return httperr.ErrBusinessMsg(httperr.CodeNoData, "no data to export")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, ap := range apps {
		names := make([]string, 0, len(ap.Services))
		for _, item := range ap.Services {
			names = append(names, item.Name)
		}

		record := []string{
			ap.OrderNumber,
			formatDate(ap.Date),
			ap.Time,
			ap.ClientName,
			ap.ClientEmail,
			ap.ClientPhone,
			ap.Stylist,
			strings.Join(names, "; "),
			ap.PaymentMethod,
			ap.TotalAmount.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
