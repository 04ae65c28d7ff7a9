package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/clock"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
	"github.com/perfectlysalon/admin-api/internal/reports"
)

type DashboardHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewDashboardHandler(db *gorm.DB, clk clock.Clock) *DashboardHandler {
	return &DashboardHandler{db: db, clock: clk}
}

// Summary is the landing-page snapshot: today's revenue and counts, the
// low-stock list and the next few upcoming appointments.
func (h *DashboardHandler) Summary(c *gin.Context) {
	now := h.clock.Now()
	today := now.Format("2006-01-02")

	var todays []models.Appointment
	if err := h.db.
		Where("date = ?", today).
		Find(&todays).Error; err != nil {

		httperr.Internal(c, "failed_to_load_dashboard", "could not load today's appointments")
		return
	}

	var inventory []models.InventoryItem
	if err := h.db.Find(&inventory).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "could not load inventory")
		return
	}

	c.JSON(http.StatusOK, reports.Summarize(todays, inventory, now))
}
