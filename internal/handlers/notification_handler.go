package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/httpresp"
	"github.com/perfectlysalon/admin-api/internal/models"
)

// NotificationHandler serves the per-client notification inbox. Rows
// are written by the dispatcher when an appointment changes status.
type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// List returns notifications for one email, newest first. An
// unread_only=true filter narrows to pending ones.
func (h *NotificationHandler) List(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		httperr.BadRequest(c, "missing_email", "email is required")
		return
	}

	q := h.db.Where("user_email = ?", email)
	if c.Query("unread_only") == "true" {
		q = q.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := q.Order("created_at DESC").Find(&notifications).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "could not load notifications")
		return
	}

	httpresp.List(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	res := h.db.Model(&models.Notification{}).
		Where("id = ?", c.Param("id")).
		Update("is_read", true)

	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_notification", "could not mark notification read")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "notification not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}

// MarkAllRead clears the unread badge for one inbox in a single update.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		httperr.BadRequest(c, "missing_email", "email is required")
		return
	}

	res := h.db.Model(&models.Notification{}).
		Where("user_email = ? AND is_read = ?", email, false).
		Update("is_read", true)

	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_notifications", "could not mark notifications read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
}
