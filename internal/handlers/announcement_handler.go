package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/clock"
	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
)

type AnnouncementHandler struct {
	db    *gorm.DB
	bus   *events.Bus
	clock clock.Clock
}

func NewAnnouncementHandler(db *gorm.DB, bus *events.Bus, clk clock.Clock) *AnnouncementHandler {
	return &AnnouncementHandler{db: db, bus: bus, clock: clk}
}

// --------- Requests ---------

type CreateAnnouncementRequest struct {
	Title      string     `json:"title" binding:"required"`
	Message    string     `json:"message" binding:"required"`
	Priority   string     `json:"priority"`
	Author     string     `json:"author"`
	ValidUntil *time.Time `json:"valid_until"`
	Highlight  string     `json:"highlight"`
}

// --------- Handlers ---------

// List returns announcements newest first. Expired ones are hidden
// unless include_expired=true; a null valid_until never expires.
func (h *AnnouncementHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Announcement{})

	if c.Query("include_expired") != "true" {
		q = q.Where("valid_until IS NULL OR valid_until >= ?", h.clock.Now())
	}
	if priority := strings.TrimSpace(c.Query("priority")); priority != "" {
		q = q.Where("priority = ?", priority)
	}

	var announcements []models.Announcement
	if err := q.Order("created_at DESC").Find(&announcements).Error; err != nil {
		httperr.Internal(c, "failed_to_list_announcements", "could not load announcements")
		return
	}

	c.JSON(http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	priority := strings.TrimSpace(req.Priority)
	if priority == "" {
		priority = "notices"
	}

	announcement := models.Announcement{
		Title:      strings.TrimSpace(req.Title),
		Message:    req.Message,
		Priority:   priority,
		Author:     req.Author,
		ValidUntil: req.ValidUntil,
		Highlight:  req.Highlight,
	}

	if err := h.db.Create(&announcement).Error; err != nil {
		httperr.Internal(c, "failed_to_create_announcement", "could not create announcement")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "announcements", Action: events.ActionInsert, ID: announcement.ID,
	})

	c.JSON(http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	res := h.db.Delete(&models.Announcement{}, c.Param("id"))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_announcement", "could not delete announcement")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "announcement_not_found", "announcement not found")
		return
	}

	h.bus.Publish(c.Request.Context(), events.Event{
		Table: "announcements", Action: events.ActionDelete,
	})

	c.JSON(http.StatusOK, gin.H{"message": "announcement deleted"})
}
