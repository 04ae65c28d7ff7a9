package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/clock"
	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
	"github.com/perfectlysalon/admin-api/internal/reports"
)

// ReportHandler builds sales aggregates over completed appointments.
// Pending, confirmed and cancelled bookings never count as revenue.
type ReportHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewReportHandler(db *gorm.DB, clk clock.Clock) *ReportHandler {
	return &ReportHandler{db: db, clock: clk}
}

func (h *ReportHandler) loadFiltered(c *gin.Context) ([]models.Appointment, bool) {
	var apps []models.Appointment
	if err := h.db.
		Where("status = ?", string(domain.StatusCompleted)).
		Order("date DESC, created_at DESC").
		Find(&apps).Error; err != nil {

		httperr.Internal(c, "failed_to_load_report", "could not load completed appointments")
		return nil, false
	}

	window := reports.Window(c.DefaultQuery("window", string(reports.WindowAll)))
	apps = reports.Filter(apps, window, c.Query("from"), c.Query("to"), h.clock.Now())
	return apps, true
}

// Summary returns the full aggregate view for the selected window.
func (h *ReportHandler) Summary(c *gin.Context) {
	apps, ok := h.loadFiltered(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_transactions":  len(apps),
		"total_revenue":       reports.TotalRevenue(apps),
		"average_transaction": reports.AverageTransaction(apps),
		"service_stats":       reports.ServiceStats(apps),
		"payment_breakdown":   reports.PaymentBreakdown(apps),
		"stylist_breakdown":   reports.StylistBreakdown(apps),
		"transactions":        apps,
	})
}

// ExportCSV streams the filtered transactions as a spreadsheet download.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	apps, ok := h.loadFiltered(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteCSV(&buf, apps); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+reports.Filename(h.clock.Now())+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
